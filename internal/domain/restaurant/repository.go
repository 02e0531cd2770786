package restaurant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines restaurant data access
type Repository interface {
	ListDishes(ctx context.Context, onlyAvailable bool) ([]*Dish, error)
	GetDishes(ctx context.Context, ids []uuid.UUID) ([]*Dish, error)
	CreateDish(ctx context.Context, dish *Dish) error
	CreateReservation(ctx context.Context, r *Reservation) error
	ListReservationsByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new restaurant repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// ListDishes returns menu dishes
func (r *repository) ListDishes(ctx context.Context, onlyAvailable bool) ([]*Dish, error) {
	query := `SELECT * FROM dishes`
	if onlyAvailable {
		query += ` WHERE available = TRUE`
	}
	query += ` ORDER BY name ASC`

	var dishes []*Dish
	err := r.db.SelectContext(ctx, &dishes, query)
	return dishes, err
}

// GetDishes returns the dishes with the given IDs
func (r *repository) GetDishes(ctx context.Context, ids []uuid.UUID) ([]*Dish, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query := `SELECT * FROM dishes WHERE id = ANY($1)`
	var dishes []*Dish
	err := r.db.SelectContext(ctx, &dishes, query, pq.Array(strIDs))
	return dishes, err
}

// CreateDish inserts a menu item
func (r *repository) CreateDish(ctx context.Context, dish *Dish) error {
	query := `
		INSERT INTO dishes (id, name, description, image_url, price_lunch, price_evening,
		                    price_dinner, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		dish.ID,
		dish.Name,
		dish.Description,
		dish.ImageURL,
		dish.PriceLunch,
		dish.PriceEvening,
		dish.PriceDinner,
		dish.Available,
		dish.CreatedAt,
		dish.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("restaurant repository create dish: %w", err)
	}
	return nil
}

// CreateReservation inserts a table reservation
func (r *repository) CreateReservation(ctx context.Context, res *Reservation) error {
	query := `
		INSERT INTO table_reservations (id, user_id, date, time_slot, guests, dish_ids, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		res.ID,
		res.UserID,
		res.Date,
		res.TimeSlot,
		res.Guests,
		res.DishIDs,
		res.Total,
		res.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("restaurant repository create reservation: %w", err)
	}
	return nil
}

// ListReservationsByUser returns the user's reservations, newest first
func (r *repository) ListReservationsByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	query := `
		SELECT * FROM table_reservations
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	var reservations []Reservation
	err := r.db.SelectContext(ctx, &reservations, query, userID)
	return reservations, err
}

// dateOnly truncates a timestamp to its calendar day in UTC
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
