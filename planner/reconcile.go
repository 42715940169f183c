package planner

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Installment statuses produced by Reconcile.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
)

// Matching tolerances: a payment covers a cuota when it lands within
// the day window and within one currency unit of the cuota amount.
const (
	matchDayWindow       = 5
	matchAmountTolerance = 1.0
)

var paidStatuses = map[string]bool{
	"pagado":    true,
	"paid":      true,
	"completed": true,
	"listo":     true,
	"aprobado":  true,
}

// PaymentRecord is one payment-history row, read-only here.
type PaymentRecord struct {
	Amount float64
	Date   time.Time
	Status string
}

// IsPaidStatus reports whether a payment status string counts as paid.
func IsPaidStatus(s string) bool {
	return paidStatuses[strings.ToLower(strings.TrimSpace(s))]
}

// Reconcile determines which installments are covered by payment
// history. Each paid payment satisfies at most one installment,
// assigned greedily in ascending due-date order; there is no persisted
// link between the two lists so two cuotas with the same amount and
// nearby dates can swap assignments. That heuristic is accepted.
// Unmatched installments are overdue when due before now, else
// pending. Bono entries carry no status.
func Reconcile(entries []Entry, payments []PaymentRecord, now time.Time) map[string]string {
	order := make([]int, 0, len(entries))
	for i, e := range entries {
		if e.Type != TypeBono {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].Date.Before(entries[order[b]].Date)
	})

	used := make([]bool, len(payments))
	today := startOfDay(now)
	statuses := make(map[string]string, len(order))

	for _, i := range order {
		e := entries[i]
		matched := false
		for pi, p := range payments {
			if used[pi] || !IsPaidStatus(p.Status) {
				continue
			}
			if dayDiff(p.Date, e.Date) < matchDayWindow &&
				math.Abs(p.Amount-e.Amount) < matchAmountTolerance {
				used[pi] = true
				matched = true
				break
			}
		}
		switch {
		case matched:
			statuses[e.ID] = StatusPaid
		case startOfDay(e.Date).Before(today):
			statuses[e.ID] = StatusOverdue
		default:
			statuses[e.ID] = StatusPending
		}
	}
	return statuses
}
