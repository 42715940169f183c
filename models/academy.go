package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type Academy struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key"`
	Name                  string    `gorm:"not null"`
	Country               string
	Settings              JSONB `gorm:"type:jsonb;default:'{}'"`
	OverdueReminders      bool  `gorm:"default:true"`
	WhatsAppNotifications bool  `gorm:"default:false"`
	SMSNotifications      bool  `gorm:"default:false"`

	Users    []User        `gorm:"foreignKey:AcademyID"`
	Clients  []Client      `gorm:"foreignKey:AcademyID"`
	Programs []Program     `gorm:"foreignKey:AcademyID"`
	Plans    []PaymentPlan `gorm:"foreignKey:AcademyID"`
	Tickets  []Ticket      `gorm:"foreignKey:AcademyID"`
}

// Custom JSONB type for academy settings
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
