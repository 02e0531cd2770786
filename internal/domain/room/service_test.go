package room_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehaven/pinehaven-api/internal/domain/room"
)

type fakeRepo struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*room.Room
	lists int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rooms: make(map[uuid.UUID]*room.Room)}
}

func (r *fakeRepo) Create(ctx context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *rm
	return &cp, nil
}

func (r *fakeRepo) List(ctx context.Context, filter room.ListFilter) ([]*room.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	var out []*room.Room
	for _, rm := range r.rooms {
		if filter.OnlyAvailable && !rm.Available {
			continue
		}
		if filter.FeaturedOnly && !rm.Featured {
			continue
		}
		cp := *rm
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeRepo) Update(ctx context.Context, rm *room.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rm
	r.rooms[rm.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	return nil
}

func (r *fakeRepo) UpdateRating(ctx context.Context, id uuid.UUID, score float64, count int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rm, ok := r.rooms[id]; ok {
		rm.RatingScore = score
		rm.ReviewsCount = count
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestServiceCreateParsesMoney(t *testing.T) {
	svc := room.NewService(newFakeRepo(), nil, nil)

	resp, err := svc.Create(context.Background(), &room.CreateRequest{
		Name:          "Ocean View Double",
		PricePerNight: "129.50",
		CleaningFee:   "35",
		TaxRate:       "0.08",
		MaxGuests:     3,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.PricePerNight != "129.50" {
		t.Fatalf("price = %s, want 129.50", resp.PricePerNight)
	}
	if resp.CleaningFee != "35.00" {
		t.Fatalf("cleaning fee = %s, want 35.00", resp.CleaningFee)
	}
	if !resp.Available {
		t.Fatal("rooms default to available")
	}
}

func TestServiceCreateRejectsBadMoney(t *testing.T) {
	svc := room.NewService(newFakeRepo(), nil, nil)

	for _, price := range []string{"abc", "-10"} {
		_, err := svc.Create(context.Background(), &room.CreateRequest{
			Name:          "Bad Room",
			PricePerNight: price,
			MaxGuests:     2,
		})
		if err != room.ErrInvalidPrice {
			t.Fatalf("price %q: err = %v, want ErrInvalidPrice", price, err)
		}
	}
}

func TestServiceListFiltersAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := room.NewService(repo, nil, nil)

	if _, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Open Room", PricePerNight: "100", MaxGuests: 2,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	closed := false
	if _, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Closed Room", PricePerNight: "100", MaxGuests: 2, Available: &closed,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	available, err := svc.List(context.Background(), room.ListFilter{OnlyAvailable: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(available) != 1 || available[0].Name != "Open Room" {
		t.Fatalf("available list = %+v, want only Open Room", available)
	}

	all, err := svc.List(context.Background(), room.ListFilter{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("full list has %d rooms, want 2", len(all))
	}
}

func TestServiceListFeaturedOnly(t *testing.T) {
	repo := newFakeRepo()
	svc := room.NewService(repo, nil, nil)

	if _, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Plain Room", PricePerNight: "80", MaxGuests: 2,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Signature Suite", PricePerNight: "220", MaxGuests: 4, Featured: true,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	featured, err := svc.List(context.Background(), room.ListFilter{OnlyAvailable: true, FeaturedOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Signature Suite" {
		t.Fatalf("featured list = %+v, want only Signature Suite", featured)
	}
	if !featured[0].Featured {
		t.Fatal("featured flag lost in response")
	}
}

func TestServicePartialUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := room.NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), &room.CreateRequest{
		Name:          "Garden Suite",
		Description:   "Quiet corner room",
		PricePerNight: "150",
		MaxGuests:     2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	id := uuid.MustParse(created.ID)
	updated, err := svc.Update(context.Background(), id, &room.UpdateRequest{
		PricePerNight: strPtr("175.25"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PricePerNight != "175.25" {
		t.Fatalf("price = %s, want 175.25", updated.PricePerNight)
	}
	if updated.Name != "Garden Suite" || updated.Description != "Quiet corner room" {
		t.Fatal("untouched fields were changed by partial update")
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc := room.NewService(newFakeRepo(), nil, nil)

	_, err := svc.Update(context.Background(), uuid.New(), &room.UpdateRequest{Name: strPtr("x")})
	if err != room.ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceRefreshRating(t *testing.T) {
	repo := newFakeRepo()
	svc := room.NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Rated Room", PricePerNight: "100", MaxGuests: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)

	if err := svc.RefreshRating(context.Background(), id, 4.5, 12); err != nil {
		t.Fatalf("RefreshRating: %v", err)
	}

	got, err := svc.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Rating != 4.5 || got.ReviewsCount != 12 {
		t.Fatalf("rating = %v/%d, want 4.5/12", got.Rating, got.ReviewsCount)
	}
}

func TestRoomToResponseFormatsMoney(t *testing.T) {
	r := &room.Room{
		ID:            uuid.New(),
		Name:          "Penthouse",
		PricePerNight: decimal.RequireFromString("399.9"),
		CleaningFee:   decimal.RequireFromString("60"),
		TaxRate:       decimal.RequireFromString("0.10"),
		MaxGuests:     4,
		Available:     true,
		CreatedAt:     time.Now(),
	}
	resp := r.ToResponse()
	if resp.PricePerNight != "399.90" {
		t.Fatalf("price = %s, want 399.90", resp.PricePerNight)
	}
	if resp.CleaningFee != "60.00" {
		t.Fatalf("cleaning fee = %s, want 60.00", resp.CleaningFee)
	}
}

type fakeOverlaps struct {
	occupied bool
}

func (f *fakeOverlaps) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error) {
	return f.occupied, nil
}

func TestServiceCheckAvailability(t *testing.T) {
	repo := newFakeRepo()
	overlaps := &fakeOverlaps{}
	svc := room.NewService(repo, nil, overlaps)

	created, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Garden Suite", PricePerNight: "120", MaxGuests: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)
	checkIn := time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2099, 6, 4, 0, 0, 0, 0, time.UTC)

	resp, err := svc.CheckAvailability(context.Background(), id, checkIn, checkOut)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if !resp.Available {
		t.Fatal("free room over a free range should be available")
	}

	overlaps.occupied = true
	resp, err = svc.CheckAvailability(context.Background(), id, checkIn, checkOut)
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if resp.Available {
		t.Fatal("occupied range must report unavailable")
	}
}

func TestServiceSetAvailability(t *testing.T) {
	repo := newFakeRepo()
	svc := room.NewService(repo, nil, &fakeOverlaps{})

	created, err := svc.Create(context.Background(), &room.CreateRequest{
		Name: "Attic Loft", PricePerNight: "90", MaxGuests: 2,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := uuid.MustParse(created.ID)

	resp, err := svc.SetAvailability(context.Background(), id, false)
	if err != nil {
		t.Fatalf("SetAvailability: %v", err)
	}
	if resp.Available {
		t.Fatal("room should be closed")
	}

	// Closed rooms are unavailable regardless of bookings
	avail, err := svc.CheckAvailability(context.Background(), id,
		time.Date(2099, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 6, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if avail.Available {
		t.Fatal("closed room must report unavailable")
	}

	if _, err := svc.SetAvailability(context.Background(), uuid.New(), true); err != room.ErrNotFound {
		t.Fatalf("unknown room: err = %v, want ErrNotFound", err)
	}
}
