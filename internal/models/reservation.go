package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationRefused   ReservationStatus = "REFUSED"
	ReservationCanceled  ReservationStatus = "CANCELED"
)

// Valid reports whether s is one of the known reservation statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationRefused, ReservationCanceled:
		return true
	}
	return false
}

// Active reservations hold the user's claim on an event: at most one
// PENDING or CONFIRMED reservation may exist per (user, event) pair.
func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Terminal statuses admit no further transition.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCanceled || s == ReservationRefused
}

type Reservation struct {
	gorm.Model
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID uuid.UUID `gorm:"type:uuid;not null;index"`
	Event   Event
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	User    User
	Status  ReservationStatus `gorm:"type:varchar(16);not null;default:'PENDING'"`
	Ticket  *Ticket
}

func (reservation *Reservation) BeforeCreate(tx *gorm.DB) (err error) {
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	return
}
