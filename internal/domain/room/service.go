package room

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OverlapChecker answers whether confirmed bookings occupy a date range.
// Implemented by the booking repository, wired in main. May be nil.
type OverlapChecker interface {
	HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error)
}

// Service handles room catalog business logic
type Service struct {
	repo     Repository
	cache    *Cache
	overlaps OverlapChecker
}

// NewService creates room service
func NewService(repo Repository, cache *Cache, overlaps OverlapChecker) *Service {
	if cache == nil {
		cache = NewCache(nil)
	}
	return &Service{repo: repo, cache: cache, overlaps: overlaps}
}

func parseMoney(value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

// Create adds a room to the catalog (admin only)
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Response, error) {
	price, err := parseMoney(req.PricePerNight)
	if err != nil {
		return nil, err
	}
	cleaningFee, err := parseMoney(req.CleaningFee)
	if err != nil {
		return nil, err
	}
	taxRate, err := parseMoney(req.TaxRate)
	if err != nil {
		return nil, err
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	now := time.Now()
	room := &Room{
		ID:            uuid.New(),
		Name:          req.Name,
		Description:   req.Description,
		PricePerNight: price,
		CleaningFee:   cleaningFee,
		TaxRate:       taxRate,
		MaxGuests:     req.MaxGuests,
		CoverImageURL: req.CoverImageURL,
		Gallery:       pq.StringArray(req.Gallery),
		Amenities:     pq.StringArray(req.Amenities),
		Available:     available,
		Featured:      req.Featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	log.Info().
		Str("room_id", room.ID.String()).
		Str("name", room.Name).
		Msg("Room created")

	return room.ToResponse(), nil
}

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// List returns a page of rooms, served from cache for the default public page
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Response, error) {
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = defaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Only the first public page is cached; filtered and admin views go
	// straight to the database.
	cacheable := filter.OnlyAvailable && !filter.FeaturedOnly &&
		filter.Offset == 0 && filter.Limit == defaultListLimit
	if cacheable {
		if cached := s.cache.GetList(ctx); cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*Response, len(rooms))
	for i, r := range rooms {
		items[i] = r.ToResponse()
	}

	if cacheable {
		s.cache.SetList(ctx, items)
	}
	return items, nil
}

// GetByID returns a single room
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Response, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}
	return room.ToResponse(), nil
}

// Update applies a partial update to a room (admin only)
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateRequest) (*Response, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.PricePerNight != nil {
		price, err := parseMoney(*req.PricePerNight)
		if err != nil {
			return nil, err
		}
		room.PricePerNight = price
	}
	if req.CleaningFee != nil {
		fee, err := parseMoney(*req.CleaningFee)
		if err != nil {
			return nil, err
		}
		room.CleaningFee = fee
	}
	if req.TaxRate != nil {
		rate, err := parseMoney(*req.TaxRate)
		if err != nil {
			return nil, err
		}
		room.TaxRate = rate
	}
	if req.MaxGuests != nil {
		room.MaxGuests = *req.MaxGuests
	}
	if req.CoverImageURL != nil {
		room.CoverImageURL = *req.CoverImageURL
	}
	if req.Gallery != nil {
		room.Gallery = pq.StringArray(req.Gallery)
	}
	if req.Amenities != nil {
		room.Amenities = pq.StringArray(req.Amenities)
	}
	if req.Available != nil {
		room.Available = *req.Available
	}
	if req.Featured != nil {
		room.Featured = *req.Featured
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)

	return room.ToResponse(), nil
}

// Delete removes a room from the catalog (admin only)
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)

	log.Info().
		Str("room_id", id.String()).
		Msg("Room deleted")

	return nil
}

// RefreshRating stores a recomputed review aggregate. Called by the review
// service after each review write.
// CheckAvailability reports whether the room can host a stay over the given
// range: the room must be open for booking and free of confirmed bookings
// overlapping the dates.
func (s *Service) CheckAvailability(ctx context.Context, id uuid.UUID, checkIn, checkOut time.Time) (*AvailabilityResponse, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, ErrNotFound
	}

	resp := &AvailabilityResponse{
		RoomID:   rm.ID.String(),
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkOut.Format("2006-01-02"),
	}

	if !rm.Available {
		return resp, nil
	}
	if s.overlaps != nil {
		occupied, err := s.overlaps.HasOverlap(ctx, id, checkIn, checkOut, uuid.Nil)
		if err != nil {
			return nil, err
		}
		if occupied {
			return resp, nil
		}
	}

	resp.Available = true
	return resp, nil
}

// SetAvailability flips the room's bookable flag (admin only)
func (s *Service) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*Response, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rm == nil {
		return nil, ErrNotFound
	}

	rm.Available = available
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return rm.ToResponse(), nil
}

func (s *Service) RefreshRating(ctx context.Context, id uuid.UUID, score float64, count int) error {
	if err := s.repo.UpdateRating(ctx, id, score, count); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}
