package planner

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildContado(t *testing.T) {
	start := date(2026, time.March, 1)
	entries, err := Build(BuildParams{PlanType: PlanContado, TotalAmount: 2500, StartDate: start})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Amount != 2500 || !e.Date.Equal(start) || e.Type != TypeRegular {
		t.Errorf("entry = %+v", e)
	}
	if e.CuotaCodigo != "CUOTA_001" || e.Concept != "Cuota 1" {
		t.Errorf("code/concept = %q/%q", e.CuotaCodigo, e.Concept)
	}
}

func TestBuildCuotasPreset(t *testing.T) {
	// 3990 over 3 cuotas with a 1330 preset: 1330 each at day 0, 30, 60.
	start := date(2026, time.January, 10)
	entries, err := Build(BuildParams{
		PlanType:         PlanCuotas,
		TotalAmount:      3990,
		InstallmentCount: 3,
		PresetAmount:     1330,
		StartDate:        start,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
	wantCodes := []string{"CUOTA_001", "CUOTA_002", "CUOTA_003"}
	for i, e := range entries {
		if e.Amount != 1330 {
			t.Errorf("entry %d amount = %v, want 1330", i, e.Amount)
		}
		if want := start.AddDate(0, 0, 30*i); !e.Date.Equal(want) {
			t.Errorf("entry %d date = %v, want %v", i, e.Date, want)
		}
		if e.CuotaCodigo != wantCodes[i] {
			t.Errorf("entry %d code = %q, want %q", i, e.CuotaCodigo, wantCodes[i])
		}
	}
}

func TestBuildCuotasDivision(t *testing.T) {
	entries, err := Build(BuildParams{
		PlanType:         PlanCuotas,
		TotalAmount:      1000,
		InstallmentCount: 3,
		StartDate:        date(2026, time.February, 1),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	// Remainders are not redistributed: each cuota is 333.33.
	for i, e := range entries {
		if e.Amount != 333.33 {
			t.Errorf("entry %d amount = %v, want 333.33", i, e.Amount)
		}
	}
}

func TestBuildExcepcion(t *testing.T) {
	start := date(2026, time.April, 15)
	entries, err := Build(BuildParams{PlanType: PlanExcepcion, TotalAmount: 4501, StartDate: start})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Amount != 2250.5 || entries[1].Amount != 2250.5 {
		t.Errorf("amounts = %v, %v", entries[0].Amount, entries[1].Amount)
	}
	if !entries[1].Date.Equal(start.AddDate(0, 0, 30)) {
		t.Errorf("second date = %v", entries[1].Date)
	}
}

func TestBuildReserva(t *testing.T) {
	resDate := date(2026, time.May, 1)
	entries, err := Build(BuildParams{
		PlanType:          PlanReserva,
		TotalAmount:       2000,
		StartDate:         resDate,
		ReservationAmount: 500,
		ReservationDate:   resDate,
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Type != TypeReserva || entries[0].Amount != 500 || entries[0].Concept != "Reserva" {
		t.Errorf("reserva entry = %+v", entries[0])
	}
	if entries[1].Type != TypeRegular || entries[1].Amount != 1500 {
		t.Errorf("remainder entry = %+v", entries[1])
	}
	if !entries[1].Date.Equal(resDate.AddDate(0, 0, 30)) {
		t.Errorf("remainder date = %v", entries[1].Date)
	}
}

func TestBuildReservaNoReservation(t *testing.T) {
	entries, err := Build(BuildParams{
		PlanType:    PlanReserva,
		TotalAmount: 1200,
		StartDate:   date(2026, time.June, 1),
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Type != TypeRegular || entries[0].Amount != 1200 {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestBuildErrors(t *testing.T) {
	start := date(2026, time.January, 1)
	tests := []struct {
		name    string
		params  BuildParams
		wantErr error
	}{
		{"unknown plan type", BuildParams{PlanType: "mensual", TotalAmount: 100, StartDate: start}, ErrUnknownPlanType},
		{"zero count", BuildParams{PlanType: PlanCuotas, TotalAmount: 100, StartDate: start}, ErrInstallmentCount},
		{"zero amount", BuildParams{PlanType: PlanContado, StartDate: start}, ErrNonPositiveAmount},
		{"reservation over total", BuildParams{PlanType: PlanReserva, TotalAmount: 100, ReservationAmount: 150, StartDate: start}, ErrReservationExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.params); !errors.Is(err, tt.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
