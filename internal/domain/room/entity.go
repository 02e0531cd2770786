package room

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Room represents a bookable room (matches rooms table)
type Room struct {
	ID            uuid.UUID       `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	CleaningFee   decimal.Decimal `db:"cleaning_fee"`
	TaxRate       decimal.Decimal `db:"tax_rate"`
	MaxGuests     int             `db:"max_guests"`
	CoverImageURL string          `db:"cover_image_url"`
	Gallery       pq.StringArray  `db:"gallery"`
	Amenities     pq.StringArray  `db:"amenities"`
	Available     bool            `db:"available"`
	Featured      bool            `db:"featured"`
	RatingScore   float64         `db:"rating_score"`
	ReviewsCount  int             `db:"reviews_count"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ToResponse converts entity to API response
func (r *Room) ToResponse() *Response {
	return &Response{
		ID:            r.ID.String(),
		Name:          r.Name,
		Description:   r.Description,
		PricePerNight: r.PricePerNight.StringFixed(2),
		CleaningFee:   r.CleaningFee.StringFixed(2),
		TaxRate:       r.TaxRate.String(),
		MaxGuests:     r.MaxGuests,
		CoverImageURL: r.CoverImageURL,
		Gallery:       []string(r.Gallery),
		Amenities:     []string(r.Amenities),
		Available:     r.Available,
		Featured:      r.Featured,
		Rating:        r.RatingScore,
		ReviewsCount:  r.ReviewsCount,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
}
