package planner

import (
	"errors"
	"testing"
	"time"
)

func TestRescheduleShiftsPendingOnly(t *testing.T) {
	start := date(2026, time.January, 10)
	entries := threeCuotaPlan(t)
	// First cuota already paid.
	payments := []PaymentRecord{{Amount: 1330, Date: start, Status: "pagado"}}
	now := start.AddDate(0, 0, 5)

	// Push the first pending cuota (day 30) out to day 45.
	newDate := start.AddDate(0, 0, 45)
	got, err := Reschedule(entries, payments, newDate, now)
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}

	if !got[0].Date.Equal(start) {
		t.Errorf("paid cuota moved to %v", got[0].Date)
	}
	if !got[1].Date.Equal(newDate) {
		t.Errorf("first pending = %v, want %v", got[1].Date, newDate)
	}
	// Same 15-day delta applied to the later pending cuota.
	if want := start.AddDate(0, 0, 75); !got[2].Date.Equal(want) {
		t.Errorf("second pending = %v, want %v", got[2].Date, want)
	}
}

func TestRescheduleBackward(t *testing.T) {
	entries := threeCuotaPlan(t)
	start := entries[0].Date
	now := start.AddDate(0, 0, -1)

	// No payments: everything is unpaid, shift all back 10 days.
	newDate := start.AddDate(0, 0, -10)
	got, err := Reschedule(entries, nil, newDate, now)
	if err != nil {
		t.Fatalf("Reschedule() error = %v", err)
	}
	for i, e := range got {
		if want := entries[i].Date.AddDate(0, 0, -10); !e.Date.Equal(want) {
			t.Errorf("entry %d date = %v, want %v", i, e.Date, want)
		}
	}
}

func TestRescheduleAllPaid(t *testing.T) {
	start := date(2026, time.January, 10)
	entries := threeCuotaPlan(t)
	payments := []PaymentRecord{
		{Amount: 1330, Date: start, Status: "pagado"},
		{Amount: 1330, Date: start.AddDate(0, 0, 30), Status: "paid"},
		{Amount: 1330, Date: start.AddDate(0, 0, 60), Status: "completed"},
	}

	_, err := Reschedule(entries, payments, start, start)
	if !errors.Is(err, ErrNoPending) {
		t.Errorf("Reschedule() error = %v, want ErrNoPending", err)
	}
}
