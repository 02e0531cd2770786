package review

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles review database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new review repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new review
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
		INSERT INTO reviews (id, room_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.RoomID,
		review.UserID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	return err
}

// GetByID returns a review by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Review, error) {
	query := `SELECT * FROM reviews WHERE id = $1`
	var review Review
	err := r.db.GetContext(ctx, &review, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return &review, err
}

// GetByRoomID returns reviews for a room, newest first
func (r *Repository) GetByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]Review, error) {
	query := `
		SELECT * FROM reviews
		WHERE room_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var reviews []Review
	err := r.db.SelectContext(ctx, &reviews, query, roomID, limit, offset)
	return reviews, err
}

// CountByRoomID returns total reviews for a room
func (r *Repository) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM reviews WHERE room_id = $1`
	var count int
	err := r.db.GetContext(ctx, &count, query, roomID)
	return count, err
}

// GetAverageRating returns average rating for a room
func (r *Repository) GetAverageRating(ctx context.Context, roomID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE room_id = $1`
	var avg float64
	err := r.db.GetContext(ctx, &avg, query, roomID)
	return avg, err
}

// GetRatingDistribution returns count of each rating for a room
func (r *Repository) GetRatingDistribution(ctx context.Context, roomID uuid.UUID) (map[int]int, error) {
	query := `
		SELECT rating, COUNT(*) as count
		FROM reviews
		WHERE room_id = $1
		GROUP BY rating
	`
	type RatingCount struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}
	var counts []RatingCount
	err := r.db.SelectContext(ctx, &counts, query, roomID)
	if err != nil {
		return nil, err
	}

	dist := make(map[int]int)
	for i := 1; i <= 5; i++ {
		dist[i] = 0
	}
	for _, c := range counts {
		dist[c.Rating] = c.Count
	}
	return dist, nil
}

// Delete removes a review
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

// HasReviewed checks if the user already reviewed the room
func (r *Repository) HasReviewed(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM reviews
			WHERE room_id = $1 AND user_id = $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, roomID, userID)
	return exists, err
}
