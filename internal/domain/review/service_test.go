package review_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/domain/review"
)

type fakeStore struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*review.Review
}

func newFakeStore() *fakeStore {
	return &fakeStore{reviews: make(map[uuid.UUID]*review.Review)}
}

func (s *fakeStore) Create(ctx context.Context, r *review.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.reviews[r.ID] = &cp
	return nil
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (s *fakeStore) GetByRoomID(ctx context.Context, roomID uuid.UUID, limit, offset int) ([]review.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []review.Review
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			out = append(out, *r)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeStore) CountByRoomID(ctx context.Context, roomID uuid.UUID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			n++
		}
	}
	return n, nil
}

func (s *fakeStore) GetAverageRating(ctx context.Context, roomID uuid.UUID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum, n := 0, 0
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (s *fakeStore) GetRatingDistribution(ctx context.Context, roomID uuid.UUID) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dist := make(map[int]int)
	for i := 1; i <= 5; i++ {
		dist[i] = 0
	}
	for _, r := range s.reviews {
		if r.RoomID == roomID {
			dist[r.Rating]++
		}
	}
	return dist, nil
}

func (s *fakeStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.reviews, id)
	return nil
}

func (s *fakeStore) HasReviewed(ctx context.Context, roomID, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reviews {
		if r.RoomID == roomID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeStays struct {
	completed map[uuid.UUID]bool // keyed by user
}

func (f *fakeStays) HasCompletedStay(ctx context.Context, userID, roomID uuid.UUID, now time.Time) (bool, error) {
	return f.completed[userID], nil
}

type fakeRatings struct {
	roomID uuid.UUID
	score  float64
	count  int
	calls  int
}

func (f *fakeRatings) RefreshRating(ctx context.Context, roomID uuid.UUID, score float64, count int) error {
	f.roomID = roomID
	f.score = score
	f.count = count
	f.calls++
	return nil
}

func TestServiceCreateRequiresCompletedStay(t *testing.T) {
	store := newFakeStore()
	stays := &fakeStays{completed: map[uuid.UUID]bool{}}
	svc := review.NewService(store, stays, nil)

	userID := uuid.New()
	_, err := svc.Create(context.Background(), userID, &review.CreateRequest{
		RoomID: uuid.New().String(),
		Rating: 5,
	})
	if err != review.ErrStayNotComplete {
		t.Fatalf("err = %v, want ErrStayNotComplete", err)
	}
}

func TestServiceCreateOncePerRoom(t *testing.T) {
	store := newFakeStore()
	userID := uuid.New()
	stays := &fakeStays{completed: map[uuid.UUID]bool{userID: true}}
	svc := review.NewService(store, stays, nil)

	roomID := uuid.New().String()
	if _, err := svc.Create(context.Background(), userID, &review.CreateRequest{
		RoomID:  roomID,
		Rating:  4,
		Comment: "Lovely stay",
	}); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := svc.Create(context.Background(), userID, &review.CreateRequest{
		RoomID: roomID,
		Rating: 5,
	})
	if err != review.ErrAlreadyReviewed {
		t.Fatalf("err = %v, want ErrAlreadyReviewed", err)
	}
}

func TestServiceCreateRefreshesRoomRating(t *testing.T) {
	store := newFakeStore()
	alice := uuid.New()
	bob := uuid.New()
	stays := &fakeStays{completed: map[uuid.UUID]bool{alice: true, bob: true}}
	ratings := &fakeRatings{}
	svc := review.NewService(store, stays, ratings)

	roomID := uuid.New()
	if _, err := svc.Create(context.Background(), alice, &review.CreateRequest{
		RoomID: roomID.String(), Rating: 5,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), bob, &review.CreateRequest{
		RoomID: roomID.String(), Rating: 4,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if ratings.calls != 2 {
		t.Fatalf("refresh calls = %d, want 2", ratings.calls)
	}
	if ratings.roomID != roomID {
		t.Fatalf("refreshed room = %s, want %s", ratings.roomID, roomID)
	}
	if ratings.score != 4.5 || ratings.count != 2 {
		t.Fatalf("aggregate = %v/%d, want 4.5/2", ratings.score, ratings.count)
	}
}

func TestServiceSummary(t *testing.T) {
	store := newFakeStore()
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	stays := &fakeStays{completed: map[uuid.UUID]bool{users[0]: true, users[1]: true, users[2]: true}}
	svc := review.NewService(store, stays, nil)

	roomID := uuid.New()
	for i, rating := range []int{5, 5, 2} {
		if _, err := svc.Create(context.Background(), users[i], &review.CreateRequest{
			RoomID: roomID.String(), Rating: rating,
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	sum, err := svc.Summary(context.Background(), roomID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.TotalReviews != 3 {
		t.Fatalf("total = %d, want 3", sum.TotalReviews)
	}
	if sum.AverageRating != 4.0 {
		t.Fatalf("average = %v, want 4.0", sum.AverageRating)
	}
	if sum.Distribution[5] != 2 || sum.Distribution[2] != 1 || sum.Distribution[1] != 0 {
		t.Fatalf("distribution = %v", sum.Distribution)
	}
	if len(sum.RecentReviews) != 3 {
		t.Fatalf("recent = %d, want 3", len(sum.RecentReviews))
	}
}

func TestServiceDeleteOwnerOnly(t *testing.T) {
	store := newFakeStore()
	owner := uuid.New()
	stays := &fakeStays{completed: map[uuid.UUID]bool{owner: true}}
	svc := review.NewService(store, stays, nil)

	created, err := svc.Create(context.Background(), owner, &review.CreateRequest{
		RoomID: uuid.New().String(), Rating: 3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)

	if err := svc.Delete(context.Background(), uuid.New(), id); err != review.ErrNotOwner {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if err := svc.Delete(context.Background(), owner, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, id); err != review.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
