package planner

import (
	"testing"
	"time"
)

func TestReconcileExactMatch(t *testing.T) {
	due := date(2026, time.February, 1)
	entries := Normalize([]Entry{{ID: "a", Date: due, Amount: 1330, Type: TypeRegular}})
	payments := []PaymentRecord{{Amount: 1330, Date: due, Status: "pagado"}}

	got := Reconcile(entries, payments, due.AddDate(0, 0, 10))
	if got["a"] != StatusPaid {
		t.Errorf("status = %q, want paid", got["a"])
	}
}

func TestReconcileTolerances(t *testing.T) {
	due := date(2026, time.February, 1)
	now := date(2026, time.January, 1)

	tests := []struct {
		name    string
		payment PaymentRecord
		want    string
	}{
		{"four days off", PaymentRecord{Amount: 1330, Date: due.AddDate(0, 0, 4), Status: "paid"}, StatusPaid},
		{"six days off", PaymentRecord{Amount: 1330, Date: due.AddDate(0, 0, 6), Status: "paid"}, StatusPending},
		{"within amount tolerance", PaymentRecord{Amount: 1330.99, Date: due, Status: "listo"}, StatusPaid},
		{"full unit off", PaymentRecord{Amount: 1331, Date: due, Status: "listo"}, StatusPending},
		{"unpaid status", PaymentRecord{Amount: 1330, Date: due, Status: "pendiente"}, StatusPending},
		{"status case insensitive", PaymentRecord{Amount: 1330, Date: due, Status: " PAGADO "}, StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []Entry{{ID: "a", Date: due, Amount: 1330, Type: TypeRegular}}
			got := Reconcile(entries, []PaymentRecord{tt.payment}, now)
			if got["a"] != tt.want {
				t.Errorf("status = %q, want %q", got["a"], tt.want)
			}
		})
	}
}

func TestReconcileOnePaymentOneCuota(t *testing.T) {
	// Two identical cuotas, one payment: only the earlier one is paid.
	d1 := date(2026, time.March, 1)
	d2 := d1.AddDate(0, 0, 3)
	entries := []Entry{
		{ID: "a", Date: d1, Amount: 500, Type: TypeRegular},
		{ID: "b", Date: d2, Amount: 500, Type: TypeRegular},
	}
	payments := []PaymentRecord{{Amount: 500, Date: d1, Status: "pagado"}}

	got := Reconcile(entries, payments, d1)
	if got["a"] != StatusPaid {
		t.Errorf("first = %q, want paid", got["a"])
	}
	if got["b"] != StatusPending {
		t.Errorf("second = %q, want pending", got["b"])
	}
}

func TestReconcileOverdue(t *testing.T) {
	now := date(2026, time.June, 1)
	entries := []Entry{
		{ID: "past", Date: now.AddDate(0, 0, -10), Amount: 100, Type: TypeRegular},
		{ID: "future", Date: now.AddDate(0, 0, 10), Amount: 100, Type: TypeRegular},
		{ID: "bono", Date: now.AddDate(0, 0, -10), Amount: 50, Type: TypeBono},
	}

	got := Reconcile(entries, nil, now)
	if got["past"] != StatusOverdue {
		t.Errorf("past = %q, want overdue", got["past"])
	}
	if got["future"] != StatusPending {
		t.Errorf("future = %q, want pending", got["future"])
	}
	if _, ok := got["bono"]; ok {
		t.Error("bono entry got a status")
	}
}
