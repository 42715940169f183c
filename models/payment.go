package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment is one payment-history record as reported by the business
// (bank transfer, card capture, cash). The planner reconciles these
// against scheduled installments by date and amount; there is no
// persisted link between a payment and a cuota.
type Payment struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	AcademyID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ClientID         uuid.UUID `gorm:"type:uuid;index;not null"`
	PlanID           *uuid.UUID `gorm:"type:uuid;index"`
	RecordedByUserID uuid.UUID  `gorm:"type:uuid;index"`

	Amount    float64   `gorm:"type:decimal(10,2);not null"`
	Currency  string    `gorm:"type:varchar(3);default:'USD'"`
	Date      time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);default:'pagado'"`
	Method    string    `gorm:"type:varchar(30)"`
	Reference string
	Notes     string

	gorm.Model
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
