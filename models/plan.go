package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan types supported by the schedule builder.
const (
	PlanContado   = "contado"
	PlanCuotas    = "cuotas"
	PlanExcepcion = "excepcion_2_cuotas"
	PlanReserva   = "reserva"
)

// Installment types. Bonos are informational extras layered on top of
// the payable schedule; they never count toward the plan amount.
const (
	InstallmentRegular = "regular"
	InstallmentExtra   = "extra"
	InstallmentBono    = "bono"
	InstallmentReserva = "reserva"
)

type PaymentPlan struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AcademyID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	PlanCode  string    `gorm:"uniqueIndex;not null"`
	ClientID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProgramID uuid.UUID `gorm:"type:uuid;index"`

	PlanType string `gorm:"type:varchar(30);not null"`
	// Derived for cuotas plans: sum of non-bono installments.
	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	Currency  string    `gorm:"type:varchar(3);default:'USD'"`
	Metodo    string    `gorm:"type:varchar(30)"`
	StartDate time.Time `gorm:"not null"`

	// Only meaningful when PlanType is 'reserva'.
	ReservationAmount float64    `gorm:"type:decimal(10,2);default:0.0"`
	ReservationDate   *time.Time

	Notes    string
	IsActive bool `gorm:"default:true"`

	Installments []Installment `gorm:"foreignKey:PlanID"`

	gorm.Model
}

type Installment struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	PlanID uuid.UUID `gorm:"type:uuid;index;not null"`

	// DetailCode is the stable identifier clients address installments
	// by; it survives edits while CuotaCodigo is re-derived from
	// position on every normalization pass.
	DetailCode  string    `gorm:"uniqueIndex;not null"`
	CuotaCodigo string    `gorm:"type:varchar(20)"`
	DueDate     time.Time `gorm:"not null"`
	Amount      float64   `gorm:"type:decimal(10,2);not null"`
	Type        string    `gorm:"type:varchar(20);default:'regular'"`
	Concept     string
	Position    int `gorm:"default:0"`

	gorm.Model
}

func (i *Installment) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
