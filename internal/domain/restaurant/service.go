package restaurant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pinehaven/pinehaven-api/internal/domain/booking"
)

// Service handles restaurant business logic
type Service struct {
	repo Repository
}

// NewService creates restaurant service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Menu returns the available dishes with per-slot pricing
func (s *Service) Menu(ctx context.Context) ([]*DishResponse, error) {
	dishes, err := s.repo.ListDishes(ctx, true)
	if err != nil {
		return nil, err
	}

	items := make([]*DishResponse, len(dishes))
	for i, d := range dishes {
		items[i] = d.ToResponse()
	}
	return items, nil
}

// Reserve creates a table reservation. The total is recomputed server-side
// from the menu prices for the chosen slot; guests are clamped the same way
// stay bookings clamp them.
func (s *Service) Reserve(ctx context.Context, userID uuid.UUID, req *CreateReservationRequest) (*ReservationResponse, error) {
	slot := TimeSlot(req.TimeSlot)
	if slot.SlotRange() == "" {
		return nil, ErrInvalidTimeSlot
	}

	date := dateOnly(req.Date)
	if date.Before(dateOnly(time.Now())) {
		return nil, ErrDateInPast
	}

	if len(req.DishIDs) == 0 {
		return nil, ErrNoDishesChosen
	}

	ids := make([]uuid.UUID, 0, len(req.DishIDs))
	seen := make(map[uuid.UUID]bool, len(req.DishIDs))
	for _, raw := range req.DishIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrDishNotFound
		}
		// Ordering the same dish twice doesn't double the bill
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	dishes, err := s.repo.GetDishes(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(dishes) != len(ids) {
		return nil, ErrDishNotFound
	}

	guests := booking.NewGuestCount(req.Guests)
	guestsDec := decimal.NewFromInt(int64(guests.Int()))

	total := decimal.Zero
	lines := make([]ReservationLine, len(dishes))
	dishIDs := make(pq.StringArray, len(dishes))
	for i, d := range dishes {
		price := d.PriceFor(slot)
		subtotal := price.Mul(guestsDec).Round(2)
		total = total.Add(subtotal)

		dishIDs[i] = d.ID.String()
		lines[i] = ReservationLine{
			DishID:   d.ID.String(),
			DishName: d.Name,
			Price:    price.StringFixed(2),
			Subtotal: subtotal.StringFixed(2),
		}
	}
	total = total.Round(2)

	reservation := &Reservation{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		TimeSlot:  slot,
		Guests:    guests.Int(),
		DishIDs:   dishIDs,
		Total:     total,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	log.Info().
		Str("reservation_id", reservation.ID.String()).
		Str("time_slot", string(slot)).
		Int("guests", guests.Int()).
		Str("total", total.StringFixed(2)).
		Msg("Table reserved")

	resp := reservation.ToResponse()
	resp.Lines = lines
	return resp, nil
}

// ListMy returns the caller's reservations
func (s *Service) ListMy(ctx context.Context, userID uuid.UUID) ([]*ReservationResponse, error) {
	reservations, err := s.repo.ListReservationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*ReservationResponse, len(reservations))
	for i := range reservations {
		items[i] = reservations[i].ToResponse()
	}
	return items, nil
}
