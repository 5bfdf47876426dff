package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is issued exactly once, when its reservation is confirmed. The
// unique index on ReservationID makes double issuance impossible at the
// storage layer. PDFPath points at the rendered document, which is only
// produced on first download.
type Ticket struct {
	gorm.Model
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	PDFPath       string    `gorm:"not null"`
	ReservationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Reservation   *Reservation
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	User          User
	EventID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Event         Event
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
