package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListFilter narrows and pages the room listing.
type ListFilter struct {
	OnlyAvailable bool
	FeaturedOnly  bool
	Limit         int
	Offset        int
}

// Repository defines room data access
type Repository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context, filter ListFilter) ([]*Room, error)
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateRating(ctx context.Context, id uuid.UUID, score float64, count int) error
}

type repository struct {
	db *sqlx.DB
}

const roomSelectColumns = `
	id, name, description, price_per_night, cleaning_fee, tax_rate,
	max_guests, cover_image_url, gallery, amenities, available, featured,
	rating_score, reviews_count, created_at, updated_at
`

// NewRepository creates new room repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts a new room
func (r *repository) Create(ctx context.Context, room *Room) error {
	query := `
		INSERT INTO rooms (id, name, description, price_per_night, cleaning_fee, tax_rate,
		                   max_guests, cover_image_url, gallery, amenities, available,
		                   featured, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Description,
		room.PricePerNight,
		room.CleaningFee,
		room.TaxRate,
		room.MaxGuests,
		room.CoverImageURL,
		room.Gallery,
		room.Amenities,
		room.Available,
		room.Featured,
		room.CreatedAt,
		room.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("room repository create: %w", err)
	}
	return nil
}

// GetByID returns a room by ID
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE id = $1`, roomSelectColumns)
	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// List returns a page of rooms, cheapest first
func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Room, error) {
	query := fmt.Sprintf(`SELECT %s FROM rooms WHERE TRUE`, roomSelectColumns)
	if filter.OnlyAvailable {
		query += ` AND available = TRUE`
	}
	if filter.FeaturedOnly {
		query += ` AND featured = TRUE`
	}
	query += ` ORDER BY price_per_night ASC, name ASC LIMIT $1 OFFSET $2`

	var rooms []*Room
	err := r.db.SelectContext(ctx, &rooms, query, filter.Limit, filter.Offset)
	return rooms, err
}

// Update persists all mutable room fields
func (r *repository) Update(ctx context.Context, room *Room) error {
	query := `
		UPDATE rooms
		SET name = $2, description = $3, price_per_night = $4, cleaning_fee = $5,
		    tax_rate = $6, max_guests = $7, cover_image_url = $8, gallery = $9,
		    amenities = $10, available = $11, featured = $12, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.Description,
		room.PricePerNight,
		room.CleaningFee,
		room.TaxRate,
		room.MaxGuests,
		room.CoverImageURL,
		room.Gallery,
		room.Amenities,
		room.Available,
		room.Featured,
	)
	if err != nil {
		return fmt.Errorf("room repository update: %w", err)
	}
	return nil
}

// Delete removes a room
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

// UpdateRating stores the recomputed review aggregate for the room
func (r *repository) UpdateRating(ctx context.Context, id uuid.UUID, score float64, count int) error {
	query := `UPDATE rooms SET rating_score = $2, reviews_count = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, score, count)
	return err
}
