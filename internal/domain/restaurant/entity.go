package restaurant

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// TimeSlot represents a dining time slot (matches time_slot enum)
type TimeSlot string

const (
	SlotLunch   TimeSlot = "lunch"
	SlotEvening TimeSlot = "evening"
	SlotDinner  TimeSlot = "dinner"
)

// SlotRange returns the serving hours shown to guests.
func (s TimeSlot) SlotRange() string {
	switch s {
	case SlotLunch:
		return "12 PM - 2 PM"
	case SlotEvening:
		return "5 PM - 7 PM"
	case SlotDinner:
		return "8 PM - 10 PM"
	default:
		return ""
	}
}

// Dish represents a menu item with per-slot pricing (matches dishes table)
type Dish struct {
	ID           uuid.UUID       `db:"id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	ImageURL     string          `db:"image_url"`
	PriceLunch   decimal.Decimal `db:"price_lunch"`
	PriceEvening decimal.Decimal `db:"price_evening"`
	PriceDinner  decimal.Decimal `db:"price_dinner"`
	Available    bool            `db:"available"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

// PriceFor returns the dish price for the given slot.
func (d *Dish) PriceFor(slot TimeSlot) decimal.Decimal {
	switch slot {
	case SlotLunch:
		return d.PriceLunch
	case SlotEvening:
		return d.PriceEvening
	case SlotDinner:
		return d.PriceDinner
	default:
		return decimal.Zero
	}
}

// ToResponse converts entity to API response
func (d *Dish) ToResponse() *DishResponse {
	return &DishResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Pricing: map[string]string{
			string(SlotLunch):   d.PriceLunch.StringFixed(2),
			string(SlotEvening): d.PriceEvening.StringFixed(2),
			string(SlotDinner):  d.PriceDinner.StringFixed(2),
		},
		Available: d.Available,
	}
}

// Reservation represents a table reservation (matches table_reservations
// table)
type Reservation struct {
	ID        uuid.UUID       `db:"id"`
	UserID    uuid.UUID       `db:"user_id"`
	Date      time.Time       `db:"date"`
	TimeSlot  TimeSlot        `db:"time_slot"`
	Guests    int             `db:"guests"`
	DishIDs   pq.StringArray  `db:"dish_ids"`
	Total     decimal.Decimal `db:"total"`
	CreatedAt time.Time       `db:"created_at"`
}

// ToResponse converts entity to API response
func (r *Reservation) ToResponse() *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID.String(),
		Date:      r.Date.Format("2006-01-02"),
		TimeSlot:  string(r.TimeSlot),
		SlotRange: r.TimeSlot.SlotRange(),
		Guests:    r.Guests,
		DishIDs:   []string(r.DishIDs),
		Total:     r.Total.StringFixed(2),
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
}
