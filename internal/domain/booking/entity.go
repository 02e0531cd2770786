package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents booking lifecycle status (matches booking_status enum)
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// Booking represents a persisted reservation (matches bookings table)
type Booking struct {
	ID          uuid.UUID       `db:"id"`
	RoomID      uuid.UUID       `db:"room_id"`
	UserID      uuid.UUID       `db:"user_id"`
	GuestEmail  string          `db:"guest_email"`
	CheckIn     time.Time       `db:"check_in"`
	CheckOut    time.Time       `db:"check_out"`
	Guests      int             `db:"guests"`
	CheckInTime sql.NullString  `db:"check_in_time"`
	Nights      int             `db:"nights"`
	Subtotal    decimal.Decimal `db:"subtotal"`
	CleaningFee decimal.Decimal `db:"cleaning_fee"`
	Tax         decimal.Decimal `db:"tax"`
	Total       decimal.Decimal `db:"total"`
	Status      Status          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// IsCancellable reports whether the booking may still be cancelled at the
// given instant. The cutoff is one day before check-in.
func (b *Booking) IsCancellable(now time.Time) bool {
	if b.Status != StatusConfirmed {
		return false
	}
	cutoff := b.CheckIn.AddDate(0, 0, -1)
	return now.Before(cutoff)
}

// ToResponse converts entity to API response
func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:         b.ID.String(),
		RoomID:     b.RoomID.String(),
		GuestEmail: b.GuestEmail,
		CheckIn:    b.CheckIn.Format("2006-01-02"),
		CheckOut:   b.CheckOut.Format("2006-01-02"),
		Guests:     b.Guests,
		Nights:     b.Nights,
		Subtotal:   b.Subtotal.StringFixed(2),
		CleaningFee: b.CleaningFee.StringFixed(2),
		Tax:        b.Tax.StringFixed(2),
		Total:      b.Total.StringFixed(2),
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
	if b.CheckInTime.Valid {
		resp.CheckInTime = b.CheckInTime.String
	}
	return resp
}
