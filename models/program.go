package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Program struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AcademyID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name          string  `gorm:"not null"`
	Description   string
	Price         float64 `gorm:"type:decimal(10,2);not null"`
	Currency      string  `gorm:"type:varchar(3);default:'USD'"`
	DurationWeeks int     `gorm:"default:0"`
	IsActive      bool    `gorm:"default:true"`

	Presets []PricingPreset `gorm:"foreignKey:ProgramID"`

	gorm.Model
}

// PricingPreset is a standard payment scheme for a program: a fixed
// number of cuotas at a fixed per-cuota amount. When a plan is built
// with a matching preset the per-cuota amount overrides the plain
// total/count division.
type PricingPreset struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	ProgramID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name              string  `gorm:"not null"`
	InstallmentCount  int     `gorm:"not null"`
	InstallmentAmount float64 `gorm:"type:decimal(10,2);not null"`
	IsActive          bool    `gorm:"default:true"`
}

func (p *PricingPreset) BeforeCreate(tx *gorm.DB) (err error) {
	p.ID = uuid.New()
	return
}
