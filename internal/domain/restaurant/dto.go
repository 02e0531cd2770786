package restaurant

import "time"

// DishResponse represents a menu item in API responses.
type DishResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	ImageURL    string            `json:"image_url,omitempty"`
	Pricing     map[string]string `json:"pricing"`
	Available   bool              `json:"available"`
}

// CreateReservationRequest represents a table reservation from the frontend.
type CreateReservationRequest struct {
	Date     time.Time `json:"date" validate:"required"`
	TimeSlot string    `json:"time_slot" validate:"required,time_slot"`
	Guests   int       `json:"guests" validate:"required"`
	DishIDs  []string  `json:"dish_ids" validate:"required,min=1,max=20,dive,uuid"`
}

// ReservationLine itemizes one dish on the reservation summary.
type ReservationLine struct {
	DishID   string `json:"dish_id"`
	DishName string `json:"dish_name"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// ReservationResponse represents a reservation in API responses.
type ReservationResponse struct {
	ID        string            `json:"id"`
	Date      string            `json:"date"`
	TimeSlot  string            `json:"time_slot"`
	SlotRange string            `json:"slot_range,omitempty"`
	Guests    int               `json:"guests"`
	DishIDs   []string          `json:"dish_ids"`
	Lines     []ReservationLine `json:"lines,omitempty"`
	Total     string            `json:"total"`
	CreatedAt string            `json:"created_at"`
}
