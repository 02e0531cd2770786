package notification

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/domain/booking"
	"github.com/pinehaven/pinehaven-api/internal/pkg/email"
)

// BookingPublisher fans booking lifecycle events out to the owner's
// WebSocket connections and mailbox. It implements booking.Notifier.
type BookingPublisher struct {
	hub    *Hub
	emails *email.Service
}

// NewBookingPublisher creates a publisher. Either dependency may be nil.
func NewBookingPublisher(hub *Hub, emails *email.Service) *BookingPublisher {
	return &BookingPublisher{hub: hub, emails: emails}
}

// BookingConfirmed pushes a booking:confirmed event and queues the
// confirmation email.
func (p *BookingPublisher) BookingConfirmed(ctx context.Context, userID uuid.UUID, b *booking.BookingResponse) {
	if p.hub != nil {
		_ = p.hub.SendToUser(userID, &Event{Type: EventBookingConfirmed, Data: b})
	}
	if p.emails != nil && b.GuestEmail != "" {
		p.emails.SendBookingConfirmed(
			b.GuestEmail, guestName(b.GuestEmail),
			b.RoomName, b.CheckIn, b.CheckOut,
			b.Nights, b.Guests, b.Total,
		)
	}
}

// BookingCancelled pushes a booking:cancelled event and queues the
// cancellation email.
func (p *BookingPublisher) BookingCancelled(ctx context.Context, userID uuid.UUID, b *booking.BookingResponse) {
	if p.hub != nil {
		_ = p.hub.SendToUser(userID, &Event{Type: EventBookingCancelled, Data: b})
	}
	if p.emails != nil && b.GuestEmail != "" {
		p.emails.SendBookingCancelled(b.GuestEmail, guestName(b.GuestEmail), b.RoomName, b.CheckIn)
	}
}

func guestName(addr string) string {
	if i := strings.IndexByte(addr, '@'); i > 0 {
		return addr[:i]
	}
	return addr
}
