package booking

import "time"

// CreateRequest represents booking creation request from frontend.
type CreateRequest struct {
	RoomID      string    `json:"room_id" validate:"required,uuid"`
	CheckIn     time.Time `json:"check_in" validate:"required"`
	CheckOut    time.Time `json:"check_out" validate:"required"`
	Guests      int       `json:"guests" validate:"required"`
	CheckInTime string    `json:"check_in_time" validate:"max=50"`
}

// UpdateDatesRequest represents a date change on an existing booking.
type UpdateDatesRequest struct {
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
}

// BookingResponse represents a booking in API responses.
type BookingResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name,omitempty"`
	GuestEmail  string `json:"guest_email"`
	CheckIn     string `json:"check_in"`
	CheckOut    string `json:"check_out"`
	Guests      int    `json:"guests"`
	CheckInTime string `json:"check_in_time,omitempty"`
	Nights      int    `json:"nights"`
	Subtotal    string `json:"subtotal"`
	CleaningFee string `json:"cleaning_fee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// QuoteRequest asks for a price breakdown without creating a booking.
type QuoteRequest struct {
	RoomID   string    `json:"room_id" validate:"required,uuid"`
	CheckIn  time.Time `json:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
	Guests   int       `json:"guests" validate:"required"`
}

// QuoteResponse returns the itemized breakdown for a prospective stay.
type QuoteResponse struct {
	Nights      int    `json:"nights"`
	Guests      int    `json:"guests"`
	Subtotal    string `json:"subtotal"`
	CleaningFee string `json:"cleaning_fee"`
	Tax         string `json:"tax"`
	Total       string `json:"total"`
}
