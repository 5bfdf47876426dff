package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hakimfr/reservia/internal/fileutil"
	"github.com/hakimfr/reservia/internal/models"
	"github.com/hakimfr/reservia/internal/repositories"
)

// TicketStore is the ticket persistence contract. Issuance itself lives
// in ReservationStore.ConfirmWithTicket so it shares the confirmation
// transaction.
type TicketStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Ticket, error)
	FindAll(ctx context.Context) ([]models.Ticket, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Renderer produces the ticket document at the given path. The ticket
// arrives with its event, user and reservation loaded.
type Renderer interface {
	Render(ctx context.Context, ticket *models.Ticket, path string) error
}

// TicketDocumentPath builds the document reference recorded at issuance
// time. The timestamp suffix keeps paths unique even if a reservation id
// ever reappears across environments.
func TicketDocumentPath(dir string, reservationID uuid.UUID) string {
	return filepath.Join(dir, fmt.Sprintf("ticket-%s-%d.pdf", reservationID, time.Now().UnixMilli()))
}

// TicketService exposes ticket reads, lazy materialization and removal.
type TicketService struct {
	tickets  TicketStore
	renderer Renderer
}

func NewTicketService(tickets TicketStore, renderer Renderer) *TicketService {
	return &TicketService{tickets: tickets, renderer: renderer}
}

// ListAll returns every ticket with joins, newest first. Admin only.
func (s *TicketService) ListAll(ctx context.Context, caller *models.User) ([]models.Ticket, error) {
	if !caller.IsAdmin() {
		return nil, Forbidden("Only admin can view all tickets")
	}
	return s.tickets.FindAll(ctx)
}

// ListMine returns the user's tickets with joins, newest first.
func (s *TicketService) ListMine(ctx context.Context, userID uuid.UUID) ([]models.Ticket, error) {
	return s.tickets.FindByUser(ctx, userID)
}

// GetOne fetches a ticket, visible to its owner or to an admin.
func (s *TicketService) GetOne(ctx context.Context, id uuid.UUID, caller *models.User) (*models.Ticket, error) {
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, NotFound("Ticket not found")
		}
		return nil, err
	}
	if !caller.IsAdmin() && ticket.UserID != caller.ID {
		return nil, Forbidden("Access denied")
	}
	return ticket, nil
}

// Materialize returns the path of the rendered ticket document, drawing
// it on first access. Confirmation never waits on rendering; a document
// already present at the recorded path is returned as is, which makes
// repeated downloads idempotent.
func (s *TicketService) Materialize(ctx context.Context, id uuid.UUID, caller *models.User) (string, error) {
	ticket, err := s.GetOne(ctx, id, caller)
	if err != nil {
		return "", err
	}
	if fileutil.FileExists(ticket.PDFPath) {
		return ticket.PDFPath, nil
	}
	if err := s.renderer.Render(ctx, ticket, ticket.PDFPath); err != nil {
		return "", err
	}
	return ticket.PDFPath, nil
}

// Remove deletes the rendered document, if present, then the ticket row.
// Admin only.
func (s *TicketService) Remove(ctx context.Context, id uuid.UUID, caller *models.User) error {
	if !caller.IsAdmin() {
		return Forbidden("Only admin can delete tickets")
	}
	ticket, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return NotFound("Ticket not found")
		}
		return err
	}
	if fileutil.FileExists(ticket.PDFPath) {
		if err := fileutil.DeleteFile(ticket.PDFPath); err != nil {
			return err
		}
	}
	return s.tickets.Delete(ctx, id)
}
