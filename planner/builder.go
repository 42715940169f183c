package planner

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Days between consecutive cuotas.
const installmentSpacingDays = 30

var (
	ErrUnknownPlanType     = errors.New("unknown plan type")
	ErrInstallmentCount    = errors.New("installment count must be at least 1")
	ErrNonPositiveAmount   = errors.New("total amount must be greater than zero")
	ErrReservationExceeded = errors.New("reservation amount exceeds total")
)

// BuildParams are the inputs for an initial schedule.
type BuildParams struct {
	PlanType         string
	TotalAmount      float64
	InstallmentCount int
	// PresetAmount, when > 0, is a fixed per-cuota amount from a
	// standard pricing preset and overrides TotalAmount/count.
	PresetAmount float64
	StartDate    time.Time

	// Reserva plans only.
	ReservationAmount float64
	ReservationDate   time.Time
}

// Build produces the initial installment list for a plan. The result
// is already normalized (cuota codes and default concepts assigned).
func Build(p BuildParams) ([]Entry, error) {
	if p.TotalAmount <= 0 {
		return nil, ErrNonPositiveAmount
	}

	var entries []Entry

	switch p.PlanType {
	case PlanContado:
		entries = append(entries, Entry{
			ID:     uuid.NewString(),
			Date:   p.StartDate,
			Amount: Round2(p.TotalAmount),
			Type:   TypeRegular,
		})

	case PlanCuotas:
		if p.InstallmentCount < 1 {
			return nil, ErrInstallmentCount
		}
		per := Round2(p.TotalAmount / float64(p.InstallmentCount))
		if p.PresetAmount > 0 {
			per = Round2(p.PresetAmount)
		}
		for i := 0; i < p.InstallmentCount; i++ {
			entries = append(entries, Entry{
				ID:     uuid.NewString(),
				Date:   p.StartDate.AddDate(0, 0, installmentSpacingDays*i),
				Amount: per,
				Type:   TypeRegular,
			})
		}

	case PlanExcepcion:
		half := Round2(p.TotalAmount / 2)
		for i := 0; i < 2; i++ {
			entries = append(entries, Entry{
				ID:     uuid.NewString(),
				Date:   p.StartDate.AddDate(0, 0, installmentSpacingDays*i),
				Amount: half,
				Type:   TypeRegular,
			})
		}

	case PlanReserva:
		if p.ReservationAmount > p.TotalAmount {
			return nil, ErrReservationExceeded
		}
		reservedAt := p.ReservationDate
		if reservedAt.IsZero() {
			reservedAt = p.StartDate
		}
		if p.ReservationAmount > 0 {
			entries = append(entries, Entry{
				ID:     uuid.NewString(),
				Date:   reservedAt,
				Amount: Round2(p.ReservationAmount),
				Type:   TypeReserva,
			})
		}
		if rest := Round2(p.TotalAmount - p.ReservationAmount); rest > 0 {
			entries = append(entries, Entry{
				ID:     uuid.NewString(),
				Date:   reservedAt.AddDate(0, 0, installmentSpacingDays),
				Amount: rest,
				Type:   TypeRegular,
			})
		}

	default:
		return nil, ErrUnknownPlanType
	}

	return Normalize(entries), nil
}
