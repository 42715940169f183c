// Package planner implements the installment schedule engine: building
// dated cuota schedules from plan parameters, renumbering after edits,
// splitting cuotas into parts, shifting pending due dates and
// reconciling schedules against payment history.
//
// The package is pure: it never touches the database. Controllers load
// a plan's installments, run the planner and persist the result.
package planner

import (
	"math"
	"time"
)

// Plan types.
const (
	PlanContado   = "contado"
	PlanCuotas    = "cuotas"
	PlanExcepcion = "excepcion_2_cuotas"
	PlanReserva   = "reserva"
)

// Entry types. Bono entries ride along in the schedule for display but
// never count as payable cash flow.
const (
	TypeRegular = "regular"
	TypeExtra   = "extra"
	TypeBono    = "bono"
	TypeReserva = "reserva"
)

// Entry is one scheduled installment. ID is stable across edits;
// CuotaCodigo is re-derived from position by Normalize.
type Entry struct {
	ID          string
	CuotaCodigo string
	Date        time.Time
	Amount      float64
	Type        string
	Concept     string
}

// Round2 rounds half-up to two decimal places. Division remainders are
// not redistributed across cuotas, so n*Round2(total/n) may differ from
// total by a few cents; the reconciler's amount tolerance absorbs that.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PayableTotal is the plan amount: the sum of every non-bono entry.
func PayableTotal(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if e.Type != TypeBono {
			total += e.Amount
		}
	}
	return Round2(total)
}

// TotalWithBonuses includes bono entries, for display figures only.
func TotalWithBonuses(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Amount
	}
	return Round2(total)
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// dayDiff is the absolute number of calendar days between two dates,
// ignoring the time-of-day component.
func dayDiff(a, b time.Time) int {
	d := int(startOfDay(a).Sub(startOfDay(b)).Hours() / 24)
	if d < 0 {
		d = -d
	}
	return d
}
