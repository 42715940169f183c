package planner

import (
	"errors"
	"math"
	"testing"
	"time"
)

func threeCuotaPlan(t *testing.T) []Entry {
	t.Helper()
	entries, err := Build(BuildParams{
		PlanType:         PlanCuotas,
		TotalAmount:      3990,
		InstallmentCount: 3,
		PresetAmount:     1330,
		StartDate:        date(2026, time.January, 10),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return entries
}

func TestSplitEven(t *testing.T) {
	entries := threeCuotaPlan(t)
	// Split the day-60 cuota into two parts at day 45 and day 60.
	target := entries[2]
	dates := []time.Time{target.Date.AddDate(0, 0, -15), target.Date}

	got, err := Split(entries, target.ID, 2, dates)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[2].Amount != 665 || got[3].Amount != 665 {
		t.Errorf("part amounts = %v, %v, want 665 each", got[2].Amount, got[3].Amount)
	}
	if got[2].ID != target.ID {
		t.Errorf("first part id = %q, want original %q", got[2].ID, target.ID)
	}
	if got[3].ID == target.ID {
		t.Error("second part reused the original id")
	}
	if !got[2].Date.Equal(dates[0]) || !got[3].Date.Equal(dates[1]) {
		t.Errorf("part dates = %v, %v", got[2].Date, got[3].Date)
	}
	// Renumbering covers the new parts.
	if got[2].CuotaCodigo != "CUOTA_003" || got[3].CuotaCodigo != "CUOTA_004" {
		t.Errorf("codes = %q, %q", got[2].CuotaCodigo, got[3].CuotaCodigo)
	}
}

func TestSplitConservesAmount(t *testing.T) {
	entries := threeCuotaPlan(t)
	before := PayableTotal(entries)

	got, err := Split(entries, entries[1].ID, 3, nil)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	after := PayableTotal(got)
	if math.Abs(after-before) >= 0.05 {
		t.Errorf("total drifted beyond rounding tolerance: before %v after %v", before, after)
	}
	// Missing dates default to the original date.
	for i := 1; i <= 3; i++ {
		if !got[i].Date.Equal(entries[1].Date) {
			t.Errorf("part %d date = %v, want %v", i, got[i].Date, entries[1].Date)
		}
	}
}

func TestSplitConceptSuffix(t *testing.T) {
	entries := threeCuotaPlan(t)
	got, err := Split(entries, entries[0].ID, 2, nil)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if got[0].Concept != "Cuota 1 (Parte 1/2)" || got[1].Concept != "Cuota 1 (Parte 2/2)" {
		t.Errorf("concepts = %q, %q", got[0].Concept, got[1].Concept)
	}
}

func TestSplitErrors(t *testing.T) {
	entries := threeCuotaPlan(t)
	late := entries[2].Date.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		id      string
		n       int
		dates   []time.Time
		wantErr error
	}{
		{"date after original", entries[2].ID, 2, []time.Time{late}, ErrDateAfterOriginal},
		{"single part", entries[0].ID, 1, nil, ErrSplitCount},
		{"unknown id", "nope", 2, nil, ErrEntryNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Split(entries, tt.id, tt.n, tt.dates); !errors.Is(err, tt.wantErr) {
				t.Errorf("Split() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
