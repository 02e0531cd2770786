package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	UpdateDates(ctx context.Context, b *Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error)
	HasCompletedStay(ctx context.Context, userID, roomID uuid.UUID, now time.Time) (bool, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new booking
func (r *repository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, user_id, guest_email, check_in, check_out, guests,
		                      check_in_time, nights, subtotal, cleaning_fee, tax, total, status,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.RoomID,
		b.UserID,
		b.GuestEmail,
		b.CheckIn,
		b.CheckOut,
		b.Guests,
		b.CheckInTime,
		b.Nights,
		b.Subtotal,
		b.CleaningFee,
		b.Tax,
		b.Total,
		b.Status,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("booking repository create: %w", err)
	}
	return nil
}

// GetByID returns a booking by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT * FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's bookings, newest first
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	query := `
		SELECT * FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	return bookings, err
}

// UpdateDates persists a date change along with the recomputed price fields.
// The total is never updated on its own; it always travels with the inputs
// it was derived from.
func (r *repository) UpdateDates(ctx context.Context, b *Booking) error {
	query := `
		UPDATE bookings
		SET check_in = $2, check_out = $3, nights = $4,
		    subtotal = $5, cleaning_fee = $6, tax = $7, total = $8,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		b.ID,
		b.CheckIn,
		b.CheckOut,
		b.Nights,
		b.Subtotal,
		b.CleaningFee,
		b.Tax,
		b.Total,
	)
	if err != nil {
		return fmt.Errorf("booking repository update dates: %w", err)
	}
	return nil
}

// UpdateStatus updates booking status
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

// HasOverlap checks whether a confirmed booking for the room overlaps the
// given range. Check-out day does not collide with another check-in day.
func (r *repository) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE room_id = $1
			  AND status = 'confirmed'
			  AND id != $4
			  AND check_in < $3
			  AND check_out > $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, roomID, checkIn, checkOut, excludeID)
	return exists, err
}

// HasCompletedStay checks whether the user has a confirmed booking for the
// room whose check-out is in the past. Review eligibility hangs off this.
func (r *repository) HasCompletedStay(ctx context.Context, userID, roomID uuid.UUID, now time.Time) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE user_id = $1 AND room_id = $2
			  AND status = 'confirmed'
			  AND check_out <= $3
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, roomID, now)
	return exists, err
}
