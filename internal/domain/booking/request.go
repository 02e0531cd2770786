package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Identity is the opaque reference to an authenticated account, supplied by
// the auth layer. The builder never performs authentication itself.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// IsZero reports whether the identity is missing either component.
func (i Identity) IsZero() bool {
	return i.UserID == uuid.Nil || i.Email == ""
}

// BookingRequest is the outbound reservation record. It is built once per
// submit action and handed to the persistence layer; it is never retried or
// mutated here.
type BookingRequest struct {
	RoomID      uuid.UUID
	UserID      uuid.UUID
	GuestEmail  string
	CheckIn     time.Time
	CheckOut    time.Time
	Guests      int
	CheckInTime string // optional label, e.g. "after 3 PM"
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// BuildRequest assembles a validated range, guest count, and computed
// breakdown into a submittable BookingRequest.
//
// Precondition: a non-empty identity. Callers must check authentication
// state before invoking; a missing identity is a caller bug surfaced as
// ErrMissingIdentity, not something the builder recovers from.
func BuildRequest(identity Identity, roomID uuid.UUID, rng StayRange, guests GuestCount, breakdown PriceBreakdown, now time.Time) (*BookingRequest, error) {
	if identity.IsZero() {
		return nil, ErrMissingIdentity
	}

	return &BookingRequest{
		RoomID:     roomID,
		UserID:     identity.UserID,
		GuestEmail: identity.Email,
		CheckIn:    rng.CheckIn(),
		CheckOut:   rng.CheckOut(),
		Guests:     guests.Int(),
		Total:      breakdown.Total,
		CreatedAt:  now,
	}, nil
}
