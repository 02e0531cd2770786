package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RoomInfo is the slice of the room catalog the booking flow needs.
type RoomInfo struct {
	ID        uuid.UUID
	Name      string
	Rates     RateSchedule
	MaxGuests int
	Available bool
}

// RoomCatalog provides room lookups for the booking flow. Implemented by an
// adapter over the room service, wired in main.
type RoomCatalog interface {
	GetForBooking(ctx context.Context, roomID uuid.UUID) (*RoomInfo, error)
}

// Notifier publishes booking lifecycle events to the owner. May be nil.
type Notifier interface {
	BookingConfirmed(ctx context.Context, userID uuid.UUID, b *BookingResponse)
	BookingCancelled(ctx context.Context, userID uuid.UUID, b *BookingResponse)
}

// Service handles booking business logic: range validation, price
// computation, availability checks, and the single-flight submit guard.
type Service struct {
	repo     Repository
	rooms    RoomCatalog
	notifier Notifier
	policy   DatePolicy
	guards   GuardSet
}

// NewService creates booking service
func NewService(repo Repository, rooms RoomCatalog, notifier Notifier, policy DatePolicy) *Service {
	return &Service{
		repo:     repo,
		rooms:    rooms,
		notifier: notifier,
		policy:   policy,
	}
}

// Quote computes a price breakdown for a prospective stay without touching
// the submit guard or persisting anything.
func (s *Service) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	rng, err := NewStayRange(req.CheckIn, req.CheckOut, s.policy)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetForBooking(ctx, roomID)
	if err != nil || room == nil {
		return nil, ErrRoomNotFound
	}

	guests := NewGuestCount(req.Guests)
	breakdown := ComputeBreakdown(rng, guests, room.Rates)

	return &QuoteResponse{
		Nights:      breakdown.Nights,
		Guests:      guests.Int(),
		Subtotal:    breakdown.Subtotal.StringFixed(2),
		CleaningFee: room.Rates.CleaningFee.StringFixed(2),
		Tax:         breakdown.Tax.StringFixed(2),
		Total:       breakdown.Total.StringFixed(2),
	}, nil
}

// Create validates, prices, and persists a new booking. The identity must be
// authenticated by the caller; submission is single-flight per user, so a
// second submit while one is outstanding returns ErrSubmissionInFlight.
func (s *Service) Create(ctx context.Context, identity Identity, req *CreateRequest) (*BookingResponse, error) {
	if identity.IsZero() {
		return nil, ErrMissingIdentity
	}

	guard := s.guards.For(identity.UserID)
	if !guard.Begin() {
		return nil, ErrSubmissionInFlight
	}
	defer guard.End()

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	rng, err := NewStayRange(req.CheckIn, req.CheckOut, s.policy)
	if err != nil {
		return nil, err
	}

	room, err := s.rooms.GetForBooking(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.Available {
		return nil, ErrRoomUnavailable
	}

	guests := NewGuestCount(req.Guests)
	if room.MaxGuests > 0 && guests.Int() > room.MaxGuests {
		guests = GuestCount(room.MaxGuests)
	}

	overlap, err := s.repo.HasOverlap(ctx, roomID, rng.CheckIn(), rng.CheckOut(), uuid.Nil)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrRoomUnavailable
	}

	// Total is always recomputed server-side from the current inputs; a
	// client-supplied total is never trusted.
	breakdown := ComputeBreakdown(rng, guests, room.Rates)

	now := time.Now()
	request, err := BuildRequest(identity, roomID, rng, guests, breakdown, now)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:          uuid.New(),
		RoomID:      request.RoomID,
		UserID:      request.UserID,
		GuestEmail:  request.GuestEmail,
		CheckIn:     request.CheckIn,
		CheckOut:    request.CheckOut,
		Guests:      request.Guests,
		CheckInTime: sql.NullString{String: req.CheckInTime, Valid: req.CheckInTime != ""},
		Nights:      breakdown.Nights,
		Subtotal:    breakdown.Subtotal,
		CleaningFee: room.Rates.CleaningFee,
		Tax:         breakdown.Tax,
		Total:       breakdown.Total,
		Status:      StatusConfirmed,
		CreatedAt:   request.CreatedAt,
		UpdatedAt:   request.CreatedAt,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		// Submission failed: no booking row exists, the caller keeps their
		// summary and may re-submit manually.
		return nil, err
	}

	resp := b.ToResponse()
	resp.RoomName = room.Name

	if s.notifier != nil {
		s.notifier.BookingConfirmed(ctx, b.UserID, resp)
	}

	log.Info().
		Str("booking_id", b.ID.String()).
		Str("room_id", b.RoomID.String()).
		Int("nights", b.Nights).
		Str("total", b.Total.StringFixed(2)).
		Msg("Booking created")

	return resp, nil
}

// ListMy returns the caller's bookings with room names attached.
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID) ([]*BookingResponse, error) {
	bookings, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*BookingResponse, len(bookings))
	for i := range bookings {
		items[i] = bookings[i].ToResponse()
		if room, err := s.rooms.GetForBooking(ctx, bookings[i].RoomID); err == nil && room != nil {
			items[i].RoomName = room.Name
		}
	}
	return items, nil
}

// UpdateDates changes a booking's date range and recomputes the total from
// the current rate schedule. Only the booking's owner may do this.
func (s *Service) UpdateDates(ctx context.Context, userID, bookingID uuid.UUID, req *UpdateDatesRequest) (*BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}

	rng, err := NewStayRange(req.CheckIn, req.CheckOut, s.policy)
	if err != nil {
		return nil, err
	}

	overlap, err := s.repo.HasOverlap(ctx, b.RoomID, rng.CheckIn(), rng.CheckOut(), b.ID)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, ErrRoomUnavailable
	}

	room, err := s.rooms.GetForBooking(ctx, b.RoomID)
	if err != nil || room == nil {
		return nil, ErrRoomNotFound
	}

	breakdown := ComputeBreakdown(rng, NewGuestCount(b.Guests), room.Rates)

	b.CheckIn = rng.CheckIn()
	b.CheckOut = rng.CheckOut()
	b.Nights = breakdown.Nights
	b.Subtotal = breakdown.Subtotal
	b.CleaningFee = room.Rates.CleaningFee
	b.Tax = breakdown.Tax
	b.Total = breakdown.Total

	if err := s.repo.UpdateDates(ctx, b); err != nil {
		return nil, err
	}

	resp := b.ToResponse()
	resp.RoomName = room.Name
	return resp, nil
}

// Cancel cancels a booking. Allowed only until 1 day before check-in.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}
	if b.UserID != userID {
		return ErrNotOwner
	}
	if !b.IsCancellable(time.Now()) {
		return ErrCancelWindowClosed
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, StatusCancelled); err != nil {
		return err
	}

	if s.notifier != nil {
		b.Status = StatusCancelled
		s.notifier.BookingCancelled(ctx, userID, b.ToResponse())
	}

	log.Info().
		Str("booking_id", bookingID.String()).
		Msg("Booking cancelled")

	return nil
}

// GetByID returns a booking if owned by the caller.
func (s *Service) GetByID(ctx context.Context, userID, bookingID uuid.UUID) (*BookingResponse, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	return b.ToResponse(), nil
}
