package room

// CreateRequest represents room creation request (admin only).
type CreateRequest struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	PricePerNight string   `json:"price_per_night" validate:"required"`
	CleaningFee   string   `json:"cleaning_fee"`
	TaxRate       string   `json:"tax_rate"`
	MaxGuests     int      `json:"max_guests" validate:"required,min=1,max=10"`
	CoverImageURL string   `json:"cover_image_url" validate:"omitempty,url"`
	Gallery       []string `json:"gallery" validate:"max=20,dive,url"`
	Amenities     []string `json:"amenities" validate:"max=50,dive,max=100"`
	Available     *bool    `json:"available"`
	Featured      bool     `json:"featured"`
}

// UpdateRequest represents a partial room update (admin only). Nil fields are
// left unchanged.
type UpdateRequest struct {
	Name          *string  `json:"name" validate:"omitempty,max=200"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	PricePerNight *string  `json:"price_per_night"`
	CleaningFee   *string  `json:"cleaning_fee"`
	TaxRate       *string  `json:"tax_rate"`
	MaxGuests     *int     `json:"max_guests" validate:"omitempty,min=1,max=10"`
	CoverImageURL *string  `json:"cover_image_url" validate:"omitempty,url"`
	Gallery       []string `json:"gallery" validate:"max=20,dive,url"`
	Amenities     []string `json:"amenities" validate:"max=50,dive,max=100"`
	Available     *bool    `json:"available"`
	Featured      *bool    `json:"featured"`
}

// Response represents a room in API responses.
type Response struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PricePerNight string   `json:"price_per_night"`
	CleaningFee   string   `json:"cleaning_fee"`
	TaxRate       string   `json:"tax_rate"`
	MaxGuests     int      `json:"max_guests"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
	Gallery       []string `json:"gallery,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	Available     bool     `json:"available"`
	Featured      bool     `json:"featured"`
	Rating        float64  `json:"rating"`
	ReviewsCount  int      `json:"reviews_count"`
	CreatedAt     string   `json:"created_at"`
}

// SetAvailabilityRequest toggles whether a room accepts bookings.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

// AvailabilityResponse answers an availability probe for a date range.
type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"check_in"`
	CheckOut  string `json:"check_out"`
	Available bool   `json:"available"`
}
