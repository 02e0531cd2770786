package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pinehaven/pinehaven-api/internal/domain/booking"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*booking.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: make(map[uuid.UUID]*booking.Booking)}
}

func (r *fakeRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []booking.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateDates(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status booking.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *fakeRepo) HasOverlap(ctx context.Context, roomID uuid.UUID, checkIn, checkOut time.Time, excludeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.RoomID != roomID || b.ID == excludeID || b.Status != booking.StatusConfirmed {
			continue
		}
		if b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) HasCompletedStay(ctx context.Context, userID, roomID uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.UserID == userID && b.RoomID == roomID && b.Status == booking.StatusConfirmed && !b.CheckOut.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeCatalog struct {
	rooms map[uuid.UUID]*booking.RoomInfo

	// When gated, each lookup signals entered and parks until release is
	// closed. The service looks rooms up after taking the submit guard, so a
	// parked lookup holds a submission in flight at a known point.
	entered chan struct{}
	release chan struct{}
}

func (c *fakeCatalog) GetForBooking(ctx context.Context, roomID uuid.UUID) (*booking.RoomInfo, error) {
	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}
	return c.rooms[roomID], nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (n *fakeNotifier) BookingConfirmed(ctx context.Context, userID uuid.UUID, b *booking.BookingResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, b.ID)
}

func (n *fakeNotifier) BookingCancelled(ctx context.Context, userID uuid.UUID, b *booking.BookingResponse) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelled = append(n.cancelled, b.ID)
}

func testFixture() (*fakeRepo, *fakeCatalog, uuid.UUID) {
	repo := newFakeRepo()
	roomID := uuid.New()
	catalog := &fakeCatalog{rooms: map[uuid.UUID]*booking.RoomInfo{
		roomID: {
			ID:        roomID,
			Name:      "Deluxe King Suite",
			Rates:     rates("100", "40", "0.10"),
			MaxGuests: 4,
			Available: true,
		},
	}}
	return repo, catalog, roomID
}

func testIdentity() booking.Identity {
	return booking.Identity{UserID: uuid.New(), Email: "guest@example.com"}
}

func createReq(roomID uuid.UUID, checkIn, checkOut time.Time, guests int) *booking.CreateRequest {
	return &booking.CreateRequest{
		RoomID:   roomID.String(),
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   guests,
	}
}

func TestServiceCreateHappyPath(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	resp, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Nights != 2 {
		t.Fatalf("nights = %d, want 2", resp.Nights)
	}
	// 100 * 2 nights * 2 guests = 400, +40 cleaning +40 tax
	if resp.Total != "480.00" {
		t.Fatalf("total = %s, want 480.00", resp.Total)
	}
	if resp.RoomName != "Deluxe King Suite" {
		t.Fatalf("room name = %q", resp.RoomName)
	}
	if resp.Status != string(booking.StatusConfirmed) {
		t.Fatalf("status = %s, want confirmed", resp.Status)
	}
	if repo.count() != 1 {
		t.Fatalf("stored %d bookings, want 1", repo.count())
	}
}

func TestServiceCreateRejectsMissingIdentity(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	_, err := svc.Create(context.Background(), booking.Identity{}, createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != booking.ErrMissingIdentity {
		t.Fatalf("err = %v, want ErrMissingIdentity", err)
	}
	if repo.count() != 0 {
		t.Fatal("booking persisted despite missing identity")
	}
}

func TestServiceCreateRejectsInvertedRange(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	_, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 3), date(2025, 6, 1), 2))
	if err != booking.ErrCheckOutNotAfterCheckIn {
		t.Fatalf("err = %v, want ErrCheckOutNotAfterCheckIn", err)
	}
}

func TestServiceCreateUnknownRoom(t *testing.T) {
	repo, catalog, _ := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	_, err := svc.Create(context.Background(), testIdentity(), createReq(uuid.New(), date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != booking.ErrRoomNotFound {
		t.Fatalf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestServiceCreateUnavailableRoom(t *testing.T) {
	repo, catalog, roomID := testFixture()
	catalog.rooms[roomID].Available = false
	svc := booking.NewService(repo, catalog, nil, allowPast())

	_, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != booking.ErrRoomUnavailable {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}
}

func TestServiceCreateClampsGuestsToRoomCapacity(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	resp, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 9))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if resp.Guests != 4 {
		t.Fatalf("guests = %d, want clamped to room capacity 4", resp.Guests)
	}
}

func TestServiceCreateRejectsOverlap(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	if _, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 1), date(2025, 6, 5), 2)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Overlapping range, different user
	_, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 4), date(2025, 6, 7), 2))
	if err != booking.ErrRoomUnavailable {
		t.Fatalf("err = %v, want ErrRoomUnavailable", err)
	}

	// Back-to-back is fine: check-out day is not an occupied night
	if _, err := svc.Create(context.Background(), testIdentity(), createReq(roomID, date(2025, 6, 5), date(2025, 6, 8), 2)); err != nil {
		t.Fatalf("back-to-back Create: %v", err)
	}
}

func TestServiceCreateSingleFlightPerUser(t *testing.T) {
	repo, catalog, roomID := testFixture()
	catalog.entered = make(chan struct{}, 8)
	catalog.release = make(chan struct{})
	svc := booking.NewService(repo, catalog, nil, allowPast())

	identity := testIdentity()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Create(context.Background(), identity, createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
		firstDone <- err
	}()

	// First submission is now in flight: guard held, parked in the catalog.
	<-catalog.entered

	// A second submit from the same user is rejected, not queued.
	_, err := svc.Create(context.Background(), identity, createReq(roomID, date(2025, 7, 1), date(2025, 7, 3), 2))
	if err != booking.ErrSubmissionInFlight {
		t.Fatalf("second submit err = %v, want ErrSubmissionInFlight", err)
	}

	close(catalog.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if repo.count() != 1 {
		t.Fatalf("stored %d bookings, want exactly 1", repo.count())
	}

	// Guard released once the first attempt settled: a fresh submit works.
	if _, err := svc.Create(context.Background(), identity, createReq(roomID, date(2025, 8, 1), date(2025, 8, 3), 2)); err != nil {
		t.Fatalf("Create after settle: %v", err)
	}
}

func TestServiceCreateGuardIsPerUser(t *testing.T) {
	repo, catalog, roomID := testFixture()
	catalog.entered = make(chan struct{}, 8)
	catalog.release = make(chan struct{})
	svc := booking.NewService(repo, catalog, nil, allowPast())

	alice := testIdentity()
	bob := testIdentity()

	aliceDone := make(chan error, 1)
	go func() {
		_, err := svc.Create(context.Background(), alice, createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
		aliceDone <- err
	}()
	<-catalog.entered

	// Alice's in-flight submission must not block bob's.
	bobDone := make(chan error, 1)
	go func() {
		_, err := svc.Create(context.Background(), bob, createReq(roomID, date(2025, 9, 1), date(2025, 9, 3), 2))
		bobDone <- err
	}()
	<-catalog.entered

	close(catalog.release)
	if err := <-aliceDone; err != nil {
		t.Fatalf("alice Create: %v", err)
	}
	if err := <-bobDone; err != nil {
		t.Fatalf("bob Create: %v", err)
	}
	if repo.count() != 2 {
		t.Fatalf("stored %d bookings, want 2", repo.count())
	}
}

func TestServiceQuoteDoesNotPersist(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	q, err := svc.Quote(context.Background(), &booking.QuoteRequest{
		RoomID:   roomID.String(),
		CheckIn:  date(2025, 6, 1),
		CheckOut: date(2025, 6, 3),
		Guests:   2,
	})
	if err != nil {
		t.Fatalf("Quote: %v", err)
	}
	if q.Total != "480.00" {
		t.Fatalf("total = %s, want 480.00", q.Total)
	}
	if repo.count() != 0 {
		t.Fatal("quote must not persist a booking")
	}
}

func TestServiceUpdateDatesRecomputesTotal(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	identity := testIdentity()
	created, err := svc.Create(context.Background(), identity, createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	id := uuid.MustParse(created.ID)
	updated, err := svc.UpdateDates(context.Background(), identity.UserID, id, &booking.UpdateDatesRequest{
		CheckIn:  date(2025, 6, 1),
		CheckOut: date(2025, 6, 5),
	})
	if err != nil {
		t.Fatalf("UpdateDates: %v", err)
	}
	if updated.Nights != 4 {
		t.Fatalf("nights = %d, want 4", updated.Nights)
	}
	// 100 * 4 * 2 = 800, +40 cleaning +80 tax
	if updated.Total != "920.00" {
		t.Fatalf("total = %s, want 920.00", updated.Total)
	}
}

func TestServiceUpdateDatesOwnerOnly(t *testing.T) {
	repo, catalog, roomID := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	identity := testIdentity()
	created, err := svc.Create(context.Background(), identity, createReq(roomID, date(2025, 6, 1), date(2025, 6, 3), 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.UpdateDates(context.Background(), uuid.New(), uuid.MustParse(created.ID), &booking.UpdateDatesRequest{
		CheckIn:  date(2025, 6, 1),
		CheckOut: date(2025, 6, 4),
	})
	if err != booking.ErrNotOwner {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
}

func TestServiceCancelWindow(t *testing.T) {
	repo, catalog, roomID := testFixture()
	notifier := &fakeNotifier{}
	svc := booking.NewService(repo, catalog, notifier, allowPast())

	identity := testIdentity()

	// Far-future stay cancels fine.
	far, err := svc.Create(context.Background(), identity, createReq(roomID, date(2099, 6, 10), date(2099, 6, 12), 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Cancel(context.Background(), identity.UserID, uuid.MustParse(far.ID)); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if len(notifier.cancelled) != 1 {
		t.Fatalf("cancelled notifications = %d, want 1", len(notifier.cancelled))
	}

	// A stay checking in tomorrow is inside the 1-day cutoff.
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	near, err := svc.Create(context.Background(), identity, createReq(roomID, tomorrow, tomorrow.AddDate(0, 0, 2), 2))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Cancel(context.Background(), identity.UserID, uuid.MustParse(near.ID)); err != booking.ErrCancelWindowClosed {
		t.Fatalf("err = %v, want ErrCancelWindowClosed", err)
	}
}

func TestServiceCancelNotFound(t *testing.T) {
	repo, catalog, _ := testFixture()
	svc := booking.NewService(repo, catalog, nil, allowPast())

	if err := svc.Cancel(context.Background(), uuid.New(), uuid.New()); err != booking.ErrBookingNotFound {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}
