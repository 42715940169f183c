package planner

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeNumbering(t *testing.T) {
	d := date(2026, time.March, 1)
	entries := []Entry{
		{ID: "a", Date: d, Amount: 100, Type: TypeRegular},
		{ID: "b", Date: d, Amount: 50, Type: TypeBono, Concept: "Bono bienvenida"},
		{ID: "c", Date: d, Amount: 100, Type: TypeRegular},
		{ID: "d", Date: d, Amount: 200, Type: TypeExtra, Concept: "Material"},
	}

	got := Normalize(entries)

	if got[0].CuotaCodigo != "CUOTA_001" || got[2].CuotaCodigo != "CUOTA_002" || got[3].CuotaCodigo != "CUOTA_003" {
		t.Errorf("codes = %q %q %q", got[0].CuotaCodigo, got[2].CuotaCodigo, got[3].CuotaCodigo)
	}
	if got[1].CuotaCodigo != "" {
		t.Errorf("bono got code %q", got[1].CuotaCodigo)
	}
	if got[0].Concept != "Cuota 1" {
		t.Errorf("default concept = %q", got[0].Concept)
	}
	if got[3].Concept != "Material" {
		t.Errorf("existing concept overwritten: %q", got[3].Concept)
	}
}

func TestNormalizeReservaConcept(t *testing.T) {
	entries := []Entry{{ID: "r", Date: date(2026, time.May, 1), Amount: 300, Type: TypeReserva}}
	got := Normalize(entries)
	if got[0].Concept != "Reserva" {
		t.Errorf("concept = %q, want Reserva", got[0].Concept)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	d := date(2026, time.March, 1)
	entries := []Entry{
		{ID: "a", Date: d, Amount: 100, Type: TypeRegular},
		{ID: "b", Date: d, Amount: 50, Type: TypeBono},
		{ID: "c", Date: d.AddDate(0, 0, 30), Amount: 100, Type: TypeReserva},
	}
	once := Normalize(entries)
	twice := Normalize(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}
