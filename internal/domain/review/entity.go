package review

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Review represents a guest's review of a room after a completed stay
type Review struct {
	ID        uuid.UUID      `db:"id"`
	RoomID    uuid.UUID      `db:"room_id"`
	UserID    uuid.UUID      `db:"user_id"`
	Rating    int            `db:"rating"`
	Comment   sql.NullString `db:"comment"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Response for API response
type Response struct {
	ID        string `json:"id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (r *Review) ToResponse() *Response {
	resp := &Response{
		ID:        r.ID.String(),
		RoomID:    r.RoomID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.Comment.Valid {
		resp.Comment = r.Comment.String
	}
	return resp
}

// RatingSummary aggregates a room's reviews
type RatingSummary struct {
	AverageRating float64     `json:"average_rating"`
	TotalReviews  int         `json:"total_reviews"`
	Distribution  map[int]int `json:"distribution"`
	RecentReviews []*Response `json:"recent_reviews,omitempty"`
}
