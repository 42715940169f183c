package planner

import (
	"errors"
	"time"
)

var ErrNoPending = errors.New("no pending installments to reschedule")

// Reschedule moves the first unpaid installment to newDate and shifts
// every later unpaid installment by the same delta, in list order.
// Paid installments never move. Paid status comes from reconciling
// against the supplied payment history.
func Reschedule(entries []Entry, payments []PaymentRecord, newDate, now time.Time) ([]Entry, error) {
	statuses := Reconcile(entries, payments, now)

	first := -1
	for i, e := range entries {
		if e.Type == TypeBono {
			continue
		}
		if statuses[e.ID] != StatusPaid {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, ErrNoPending
	}

	delta := startOfDay(newDate).Sub(startOfDay(entries[first].Date))

	out := make([]Entry, len(entries))
	copy(out, entries)
	for i := first; i < len(out); i++ {
		if out[i].Type == TypeBono || statuses[out[i].ID] == StatusPaid {
			continue
		}
		out[i].Date = out[i].Date.Add(delta)
	}
	return out, nil
}
