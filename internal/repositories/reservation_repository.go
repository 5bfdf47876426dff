package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hakimfr/reservia/internal/models"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Event").
		Preload("User").
		Preload("Ticket")
}

// Create persists a new PENDING reservation and returns it with its
// event and user loaded.
func (r *ReservationRepository) Create(ctx context.Context, eventID, userID uuid.UUID) (*models.Reservation, error) {
	reservation := models.Reservation{
		EventID: eventID,
		UserID:  userID,
		Status:  models.ReservationPending,
	}
	if err := r.db.WithContext(ctx).Create(&reservation).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, reservation.ID)
}

// FindByID returns a reservation with its event, user and ticket loaded,
// or ErrNotFound.
func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := r.preloaded(ctx).First(&reservation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// FindAll returns every reservation, newest first.
func (r *ReservationRepository) FindAll(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.preloaded(ctx).Order("created_at DESC").Find(&reservations).Error
	return reservations, err
}

// FindByUser returns the user's reservations, newest first.
func (r *ReservationRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := r.preloaded(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reservations).Error
	return reservations, err
}

// CountConfirmed computes the event's live capacity usage. Capacity is
// never stored as a counter; only CONFIRMED rows occupy a seat.
func (r *ReservationRepository) CountConfirmed(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("event_id = ? AND status = ?", eventID, models.ReservationConfirmed).
		Count(&count).Error
	return count, err
}

// HasActive reports whether the user holds a PENDING or CONFIRMED
// reservation for the event.
func (r *ReservationRepository) HasActive(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("event_id = ? AND user_id = ? AND status IN ?",
			eventID, userID,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationConfirmed}).
		Count(&count).Error
	return count > 0, err
}

// HasCanceled reports whether the user previously canceled a reservation
// for the event.
func (r *ReservationRepository) HasCanceled(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("event_id = ? AND user_id = ? AND status = ?",
			eventID, userID, models.ReservationCanceled).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatus persists a status change and returns the updated
// reservation with joins.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReservationStatus) (*models.Reservation, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// ConfirmWithTicket performs the PENDING -> CONFIRMED transition and the
// one-time ticket issuance as a single transaction.
//
// The event row is locked with SELECT ... FOR UPDATE before the live
// CONFIRMED count is taken, so two confirmations racing for the last
// seat serialize on the lock and the loser sees the winner's committed
// row. A failure after the ticket insert rolls back the status change
// as well; partially-applied confirmations cannot occur.
func (r *ReservationRepository) ConfirmWithTicket(ctx context.Context, reservation *models.Reservation, pdfPath string) (*models.Reservation, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", reservation.EventID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var confirmed int64
		if err := tx.Model(&models.Reservation{}).
			Where("event_id = ? AND status = ?", event.ID, models.ReservationConfirmed).
			Count(&confirmed).Error; err != nil {
			return err
		}
		if confirmed >= int64(event.Capacity) {
			return ErrEventFull
		}

		ticket := models.Ticket{
			PDFPath:       pdfPath,
			ReservationID: reservation.ID,
			UserID:        reservation.UserID,
			EventID:       reservation.EventID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}

		return tx.Model(&models.Reservation{}).
			Where("id = ?", reservation.ID).
			Update("status", models.ReservationConfirmed).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, reservation.ID)
}
