package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board columns for tickets.
const (
	TicketTodo       = "todo"
	TicketInProgress = "in_progress"
	TicketDone       = "done"
)

type Ticket struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	AcademyID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);default:'todo'"`
	Priority    string `gorm:"type:varchar(10);default:'medium'"` // low, medium, high
	Position    int    `gorm:"default:0"`

	AssigneeID *uuid.UUID `gorm:"type:uuid;index"`
	ClientID   *uuid.UUID `gorm:"type:uuid;index"`
	DueDate    *time.Time

	gorm.Model
}

func (t *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
