package review

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store is the review persistence the service needs. *Repository satisfies it.
type Store interface {
	Create(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	GetByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]Review, error)
	CountByRoomID(ctx context.Context, roomID uuid.UUID) (int, error)
	GetAverageRating(ctx context.Context, roomID uuid.UUID) (float64, error)
	GetRatingDistribution(ctx context.Context, roomID uuid.UUID) (map[int]int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	HasReviewed(ctx context.Context, roomID, userID uuid.UUID) (bool, error)
}

// StayVerifier answers whether the user has actually stayed in the room.
// Implemented by an adapter over the booking repository, wired in main.
type StayVerifier interface {
	HasCompletedStay(ctx context.Context, userID, roomID uuid.UUID, now time.Time) (bool, error)
}

// RatingUpdater receives the recomputed aggregate after each review write.
// Implemented by an adapter over the room service. May be nil.
type RatingUpdater interface {
	RefreshRating(ctx context.Context, roomID uuid.UUID, score float64, count int) error
}

// Service handles review business logic
type Service struct {
	store   Store
	stays   StayVerifier
	ratings RatingUpdater
}

// NewService creates review service
func NewService(store Store, stays StayVerifier, ratings RatingUpdater) *Service {
	return &Service{store: store, stays: stays, ratings: ratings}
}

// Create adds a review. Only guests with a completed stay in the room may
// review it, and only once.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateRequest) (*Response, error) {
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, ErrNotFound
	}

	stayed, err := s.stays.HasCompletedStay(ctx, userID, roomID, time.Now())
	if err != nil {
		return nil, err
	}
	if !stayed {
		return nil, ErrStayNotComplete
	}

	reviewed, err := s.store.HasReviewed(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	now := time.Now()
	review := &Review{
		ID:        uuid.New(),
		RoomID:    roomID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   sql.NullString{String: req.Comment, Valid: req.Comment != ""},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Create(ctx, review); err != nil {
		return nil, err
	}

	s.refreshAggregate(ctx, roomID)

	log.Info().
		Str("review_id", review.ID.String()).
		Str("room_id", roomID.String()).
		Int("rating", req.Rating).
		Msg("Review created")

	return review.ToResponse(), nil
}

// ListByRoom returns paginated reviews for a room
func (s *Service) ListByRoom(ctx context.Context, roomID uuid.UUID, page, limit int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 20
	}

	reviews, err := s.store.GetByRoomID(ctx, roomID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}

	items := make([]*Response, len(reviews))
	for i := range reviews {
		items[i] = reviews[i].ToResponse()
	}

	return &ListResponse{
		Reviews: items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

// Summary returns a room's rating aggregate with its latest reviews
func (s *Service) Summary(ctx context.Context, roomID uuid.UUID) (*RatingSummary, error) {
	avg, err := s.store.GetAverageRating(ctx, roomID)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	dist, err := s.store.GetRatingDistribution(ctx, roomID)
	if err != nil {
		return nil, err
	}
	recent, err := s.store.GetByRoomID(ctx, roomID, 5, 0)
	if err != nil {
		return nil, err
	}

	items := make([]*Response, len(recent))
	for i := range recent {
		items[i] = recent[i].ToResponse()
	}

	return &RatingSummary{
		AverageRating: roundRating(avg),
		TotalReviews:  total,
		Distribution:  dist,
		RecentReviews: items,
	}, nil
}

// Delete removes the caller's own review
func (s *Service) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	review, err := s.store.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrNotFound
	}
	if review.UserID != userID {
		return ErrNotOwner
	}

	if err := s.store.Delete(ctx, reviewID); err != nil {
		return err
	}

	s.refreshAggregate(ctx, review.RoomID)
	return nil
}

// refreshAggregate pushes the new average and count to the room catalog.
// Aggregate drift is tolerable, so failures are logged and swallowed.
func (s *Service) refreshAggregate(ctx context.Context, roomID uuid.UUID) {
	if s.ratings == nil {
		return
	}

	avg, err := s.store.GetAverageRating(ctx, roomID)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomID.String()).Msg("Rating aggregate read failed")
		return
	}
	count, err := s.store.CountByRoomID(ctx, roomID)
	if err != nil {
		log.Warn().Err(err).Str("room_id", roomID.String()).Msg("Rating count read failed")
		return
	}

	if err := s.ratings.RefreshRating(ctx, roomID, roundRating(avg), count); err != nil {
		log.Warn().Err(err).Str("room_id", roomID.String()).Msg("Rating refresh failed")
	}
}

// roundRating keeps one decimal place, matching the catalog display.
func roundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
