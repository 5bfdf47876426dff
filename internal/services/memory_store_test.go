package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/hakimfr/reservia/internal/models"
	"github.com/hakimfr/reservia/internal/repositories"
)

// memoryBackend backs the store fakes used across the service tests.
// ConfirmWithTicket holds the lock for the whole check-issue-flip
// sequence, mirroring the transactional guarantee of the real store.
type memoryBackend struct {
	mu           sync.Mutex
	events       map[uuid.UUID]*models.Event
	reservations map[uuid.UUID]*models.Reservation
	tickets      map[uuid.UUID]*models.Ticket
}

func newMemoryBackend() *memoryBackend {
	return &memoryBackend{
		events:       make(map[uuid.UUID]*models.Event),
		reservations: make(map[uuid.UUID]*models.Reservation),
		tickets:      make(map[uuid.UUID]*models.Ticket),
	}
}

func (b *memoryBackend) addEvent(status models.EventStatus, capacity int) *models.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	event := &models.Event{
		ID:       uuid.New(),
		Title:    "Test Event",
		Status:   status,
		Capacity: capacity,
	}
	b.events[event.ID] = event
	return event
}

func (b *memoryBackend) addReservation(event *models.Event, user *models.User, status models.ReservationStatus) *models.Reservation {
	b.mu.Lock()
	defer b.mu.Unlock()
	reservation := &models.Reservation{
		ID:      uuid.New(),
		EventID: event.ID,
		UserID:  user.ID,
		Status:  status,
	}
	b.reservations[reservation.ID] = reservation
	return reservation
}

func (b *memoryBackend) addTicket(event *models.Event, user *models.User, reservation *models.Reservation, pdfPath string) *models.Ticket {
	b.mu.Lock()
	defer b.mu.Unlock()
	ticket := &models.Ticket{
		ID:            uuid.New(),
		PDFPath:       pdfPath,
		ReservationID: reservation.ID,
		UserID:        user.ID,
		EventID:       event.ID,
	}
	b.tickets[ticket.ID] = ticket
	return ticket
}

func (b *memoryBackend) ticketCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tickets)
}

func (b *memoryBackend) countConfirmedLocked(eventID uuid.UUID) int64 {
	var confirmed int64
	for _, r := range b.reservations {
		if r.EventID == eventID && r.Status == models.ReservationConfirmed {
			confirmed++
		}
	}
	return confirmed
}

type memoryEvents struct{ *memoryBackend }

func (s memoryEvents) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return event, nil
}

type memoryReservations struct{ *memoryBackend }

func (s memoryReservations) Create(ctx context.Context, eventID, userID uuid.UUID) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation := &models.Reservation{
		ID:      uuid.New(),
		EventID: eventID,
		UserID:  userID,
		Status:  models.ReservationPending,
	}
	s.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (s memoryReservations) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return reservation, nil
}

func (s memoryReservations) FindAll(ctx context.Context) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Reservation, 0, len(s.reservations))
	for _, r := range s.reservations {
		all = append(all, *r)
	}
	return all, nil
}

func (s memoryReservations) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []models.Reservation
	for _, r := range s.reservations {
		if r.UserID == userID {
			mine = append(mine, *r)
		}
	}
	return mine, nil
}

func (s memoryReservations) CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countConfirmedLocked(eventID), nil
}

func (s memoryReservations) HasActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.EventID == eventID && r.UserID == userID && r.Status.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (s memoryReservations) HasCanceled(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reservations {
		if r.EventID == eventID && r.UserID == userID && r.Status == models.ReservationCanceled {
			return true, nil
		}
	}
	return false, nil
}

func (s memoryReservations) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	reservation.Status = status
	return reservation, nil
}

func (s memoryReservations) ConfirmWithTicket(ctx context.Context, reservation *models.Reservation, pdfPath string) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[reservation.EventID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if s.countConfirmedLocked(event.ID) >= int64(event.Capacity) {
		return nil, repositories.ErrEventFull
	}
	ticket := &models.Ticket{
		ID:            uuid.New(),
		PDFPath:       pdfPath,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		EventID:       reservation.EventID,
	}
	s.tickets[ticket.ID] = ticket
	stored := s.reservations[reservation.ID]
	stored.Status = models.ReservationConfirmed
	stored.Ticket = ticket
	return stored, nil
}

type memoryTickets struct{ *memoryBackend }

func (s memoryTickets) FindByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return ticket, nil
}

func (s memoryTickets) FindAll(ctx context.Context) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		all = append(all, *t)
	}
	return all, nil
}

func (s memoryTickets) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []models.Ticket
	for _, t := range s.tickets {
		if t.UserID == userID {
			mine = append(mine, *t)
		}
	}
	return mine, nil
}

func (s memoryTickets) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.tickets, id)
	return nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []uuid.UUID
}

func (n *recordingNotifier) ReservationConfirmed(ctx context.Context, reservation *models.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, reservation.ID)
}

func newTestAdmin() *models.User {
	return &models.User{ID: uuid.New(), Name: "Admin", Role: models.Role{Name: models.RoleAdmin}}
}

func newTestParticipant() *models.User {
	return &models.User{ID: uuid.New(), Name: "Participant", Role: models.Role{Name: models.RoleParticipant}}
}
