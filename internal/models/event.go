package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCanceled  EventStatus = "CANCELED"
)

// Valid reports whether s is one of the known event statuses.
func (s EventStatus) Valid() bool {
	switch s {
	case EventDraft, EventPublished, EventCanceled:
		return true
	}
	return false
}

type Event struct {
	gorm.Model
	ID          uuid.UUID   `gorm:"type:uuid;primary_key"`
	Title       string      `gorm:"not null"`
	Description string      `gorm:"not null"`
	DateTime    time.Time   `gorm:"not null"`
	Location    string      `gorm:"not null"`
	Capacity    int         `gorm:"not null"`
	Status      EventStatus `gorm:"type:varchar(16);not null;default:'DRAFT'"`
	AdminID     uuid.UUID
	Admin       User `gorm:"foreignKey:AdminID"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
