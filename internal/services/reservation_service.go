// Package services holds the business rules of the booking platform:
// the reservation lifecycle engine and the ticket issuer. Handlers pass
// the authenticated caller in explicitly; nothing here reads ambient
// request state.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hakimfr/reservia/internal/models"
	"github.com/hakimfr/reservia/internal/repositories"
)

// EventStore is the event lookup the engine depends on.
type EventStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
}

// ReservationStore is the reservation persistence contract. Capacity is
// derived (CountConfirmed), never stored. ConfirmWithTicket must check
// capacity, issue the ticket and flip the status atomically; it returns
// repositories.ErrEventFull when the event has no seat left.
type ReservationStore interface {
	Create(ctx context.Context, eventID, userID uuid.UUID) (*models.Reservation, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error)
	FindAll(ctx context.Context) ([]models.Reservation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error)
	CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error)
	HasActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	HasCanceled(ctx context.Context, eventID, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error)
	ConfirmWithTicket(ctx context.Context, reservation *models.Reservation, pdfPath string) (*models.Reservation, error)
}

// Notifier publishes a message when a reservation is confirmed. Delivery
// is best effort and must never fail the confirmation.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, reservation *models.Reservation)
}

// ReservationService is the reservation lifecycle engine. It is the sole
// writer of reservation status transitions and the sole trigger of
// ticket issuance.
type ReservationService struct {
	events       EventStore
	reservations ReservationStore
	notifier     Notifier
	ticketDir    string
}

func NewReservationService(events EventStore, reservations ReservationStore, notifier Notifier, ticketDir string) *ReservationService {
	if ticketDir == "" {
		ticketDir = "tickets"
	}
	return &ReservationService{
		events:       events,
		reservations: reservations,
		notifier:     notifier,
		ticketDir:    ticketDir,
	}
}

// Create books a PENDING reservation for the caller on the given event.
// Preconditions are checked in a fixed order, each with its own error:
// the event exists, is PUBLISHED, has confirmed seats left, the caller
// holds no active reservation for it and never canceled one.
func (s *ReservationService) Create(ctx context.Context, eventID uuid.UUID, caller *models.User) (*models.Reservation, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Event not found")
		}
		return nil, err
	}
	if event.Status != models.EventPublished {
		return nil, Forbidden("Event not available")
	}

	confirmed, err := s.reservations.CountConfirmed(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if confirmed >= int64(event.Capacity) {
		return nil, InvalidState("Event is full")
	}

	active, err := s.reservations.HasActive(ctx, eventID, caller.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, InvalidState("You have already reserved a spot for this event")
	}

	canceled, err := s.reservations.HasCanceled(ctx, eventID, caller.ID)
	if err != nil {
		return nil, err
	}
	if canceled {
		return nil, InvalidState("You have already reserved and canceled this event. Cannot reserve again.")
	}

	return s.reservations.Create(ctx, eventID, caller.ID)
}

// ListAll returns every reservation with joins, newest first. Admin only.
func (s *ReservationService) ListAll(ctx context.Context, caller *models.User) ([]models.Reservation, error) {
	if !caller.IsAdmin() {
		return nil, Forbidden("Only admin can view all reservations")
	}
	return s.reservations.FindAll(ctx)
}

// ListMine returns the user's reservations with joins, newest first.
func (s *ReservationService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	return s.reservations.FindByUser(ctx, userID)
}

// GetOne fetches a reservation by id with joins.
func (s *ReservationService) GetOne(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Reservation not found")
		}
		return nil, err
	}
	return reservation, nil
}

// UpdateStatus applies an admin transition. PENDING may move to
// CONFIRMED, CANCELED or REFUSED; the other statuses admit no further
// change. Confirming re-takes the seat count under lock, since seats
// may have been claimed since creation, and issues the ticket in the
// same transaction as the status write.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus, caller *models.User) (*models.Reservation, error) {
	if !caller.IsAdmin() {
		return nil, Forbidden("Only admin can update status")
	}
	if !status.Valid() {
		return nil, InvalidState("Invalid reservation status")
	}

	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Reservation not found")
		}
		return nil, err
	}

	if reservation.Status == status {
		return nil, InvalidState(fmt.Sprintf("Reservation is already %s", status))
	}
	switch reservation.Status {
	case models.ReservationCanceled:
		if status == models.ReservationConfirmed {
			return nil, InvalidState("Cannot confirm a canceled reservation")
		}
		return nil, InvalidState("Cannot update a canceled reservation")
	case models.ReservationRefused:
		if status == models.ReservationConfirmed {
			return nil, InvalidState("Cannot confirm a refused reservation")
		}
		return nil, InvalidState("Cannot update a refused reservation")
	case models.ReservationConfirmed:
		return nil, InvalidState("Cannot cancel a confirmed reservation")
	}

	if status == models.ReservationConfirmed {
		pdfPath := TicketDocumentPath(s.ticketDir, reservation.ID)
		updated, err := s.reservations.ConfirmWithTicket(ctx, reservation, pdfPath)
		if err != nil {
			if errors.Is(err, repositories.ErrEventFull) {
				return nil, InvalidState("Event is full")
			}
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, NotFound("Event not found")
			}
			return nil, err
		}
		if s.notifier != nil {
			s.notifier.ReservationConfirmed(ctx, updated)
		}
		return updated, nil
	}

	return s.reservations.UpdateStatus(ctx, id, status)
}

// CancelOwn is the participant self-cancel path. Only the owner may
// cancel, and only while the reservation is still PENDING: a confirmed
// seat can only be released through the admin, and canceled or refused
// reservations stay where they are.
func (s *ReservationService) CancelOwn(ctx context.Context, id uuid.UUID, caller *models.User) (*models.Reservation, error) {
	reservation, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Reservation not found")
		}
		return nil, err
	}
	if reservation.UserID != caller.ID {
		return nil, Forbidden("You can only cancel your own reservations")
	}
	switch reservation.Status {
	case models.ReservationCanceled:
		return nil, InvalidState("Reservation already canceled")
	case models.ReservationConfirmed:
		return nil, InvalidState("Cannot cancel a confirmed reservation")
	case models.ReservationRefused:
		return nil, InvalidState("Cannot cancel a refused reservation")
	}

	return s.reservations.UpdateStatus(ctx, id, models.ReservationCanceled)
}
