package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/hakimfr/reservia/internal/models"
)

type countingRenderer struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRenderer) Render(ctx context.Context, ticket *models.Ticket, path string) error {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return os.WriteFile(path, []byte("%PDF-1.4"), 0o644)
}

func issuedTicket(backend *memoryBackend, dir string) (*models.Ticket, *models.User) {
	user := newTestParticipant()
	event := backend.addEvent(models.EventPublished, 10)
	reservation := backend.addReservation(event, user, models.ReservationConfirmed)
	pdfPath := filepath.Join(dir, "ticket-"+reservation.ID.String()+".pdf")
	return backend.addTicket(event, user, reservation, pdfPath), user
}

func TestGetTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("owner may read the ticket", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, owner := issuedTicket(backend, t.TempDir())

		found, err := service.GetOne(ctx, ticket.ID, owner)

		assert.NoError(t, err)
		assert.Equal(t, ticket.ID, found.ID)
	})

	t.Run("admin may read any ticket", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, _ := issuedTicket(backend, t.TempDir())

		_, err := service.GetOne(ctx, ticket.ID, newTestAdmin())

		assert.NoError(t, err)
	})

	t.Run("other participants are denied", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, _ := issuedTicket(backend, t.TempDir())

		_, err := service.GetOne(ctx, ticket.ID, newTestParticipant())

		assertBusinessError(t, err, KindForbidden, "Access denied")
	})

	t.Run("rejects an unknown ticket", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})

		_, err := service.GetOne(ctx, uuid.New(), newTestAdmin())

		assertBusinessError(t, err, KindNotFound, "Ticket not found")
	})
}

func TestMaterializeTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the document on first access only", func(t *testing.T) {
		backend := newMemoryBackend()
		renderer := &countingRenderer{}
		service := NewTicketService(memoryTickets{backend}, renderer)
		ticket, owner := issuedTicket(backend, t.TempDir())

		first, err := service.Materialize(ctx, ticket.ID, owner)
		assert.NoError(t, err)
		assert.Equal(t, ticket.PDFPath, first)
		assert.FileExists(t, first)

		second, err := service.Materialize(ctx, ticket.ID, owner)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, renderer.calls)
	})

	t.Run("access rules apply before rendering", func(t *testing.T) {
		backend := newMemoryBackend()
		renderer := &countingRenderer{}
		service := NewTicketService(memoryTickets{backend}, renderer)
		ticket, _ := issuedTicket(backend, t.TempDir())

		_, err := service.Materialize(ctx, ticket.ID, newTestParticipant())

		assertBusinessError(t, err, KindForbidden, "Access denied")
		assert.Zero(t, renderer.calls)
	})
}

func TestRemoveTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("admin removes the document and the row", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, owner := issuedTicket(backend, t.TempDir())
		_, err := service.Materialize(ctx, ticket.ID, owner)
		assert.NoError(t, err)

		err = service.Remove(ctx, ticket.ID, newTestAdmin())

		assert.NoError(t, err)
		assert.NoFileExists(t, ticket.PDFPath)
		assert.Zero(t, backend.ticketCount())
	})

	t.Run("removal works before the document was rendered", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, _ := issuedTicket(backend, t.TempDir())

		err := service.Remove(ctx, ticket.ID, newTestAdmin())

		assert.NoError(t, err)
		assert.Zero(t, backend.ticketCount())
	})

	t.Run("only admin may remove tickets", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		ticket, owner := issuedTicket(backend, t.TempDir())

		err := service.Remove(ctx, ticket.ID, owner)

		assertBusinessError(t, err, KindForbidden, "Only admin can delete tickets")
		assert.Equal(t, 1, backend.ticketCount())
	})
}

func TestListTickets(t *testing.T) {
	ctx := context.Background()

	t.Run("only admin may list all", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})

		_, err := service.ListAll(ctx, newTestParticipant())

		assertBusinessError(t, err, KindForbidden, "Only admin can view all tickets")
	})

	t.Run("list mine returns only the caller's tickets", func(t *testing.T) {
		backend := newMemoryBackend()
		service := NewTicketService(memoryTickets{backend}, &countingRenderer{})
		dir := t.TempDir()
		_, owner := issuedTicket(backend, dir)
		issuedTicket(backend, dir)

		mine, err := service.ListMine(ctx, owner.ID)

		assert.NoError(t, err)
		assert.Len(t, mine, 1)
		assert.Equal(t, owner.ID, mine[0].UserID)
	})
}
