package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	AcademyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_academy_cliente,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClienteCodigo string `gorm:"not null;uniqueIndex:idx_academy_cliente,priority:2"`
	Name          string `gorm:"not null"`
	Phone         string `gorm:"not null"`
	Email         string
	Country       string
	Notes         string
	TotalPaid     float64 `gorm:"type:decimal(10,2);default:0.0"`
	ActivePlans   int     `gorm:"default:0"`
	LastPayment   *time.Time
	IsActive      bool `gorm:"default:true"`

	Plans    []PaymentPlan `gorm:"foreignKey:ClientID"`
	Payments []Payment     `gorm:"foreignKey:ClientID"`

	gorm.Model
}
