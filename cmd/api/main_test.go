package main

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehaven/pinehaven-api/internal/domain/room"
)

type stubRoomRepo struct {
	room *room.Room
}

func (s *stubRoomRepo) Create(context.Context, *room.Room) error { return nil }
func (s *stubRoomRepo) GetByID(context.Context, uuid.UUID) (*room.Room, error) {
	return s.room, nil
}
func (s *stubRoomRepo) List(context.Context, room.ListFilter) ([]*room.Room, error) {
	return nil, nil
}
func (s *stubRoomRepo) Update(context.Context, *room.Room) error       { return nil }
func (s *stubRoomRepo) Delete(context.Context, uuid.UUID) error        { return nil }
func (s *stubRoomRepo) UpdateRating(context.Context, uuid.UUID, float64, int) error {
	return nil
}

func TestRoomCatalogAdapterMapsRates(t *testing.T) {
	id := uuid.New()
	repo := &stubRoomRepo{room: &room.Room{
		ID:            id,
		Name:          "Forest View Cabin",
		PricePerNight: decimal.RequireFromString("150"),
		CleaningFee:   decimal.RequireFromString("40"),
		TaxRate:       decimal.RequireFromString("0.10"),
		MaxGuests:     4,
		Available:     true,
	}}

	adapter := &roomCatalogAdapter{rooms: repo}
	info, err := adapter.GetForBooking(context.Background(), id)
	if err != nil {
		t.Fatalf("GetForBooking() error = %v", err)
	}
	if info.Name != "Forest View Cabin" || info.MaxGuests != 4 || !info.Available {
		t.Fatalf("unexpected room info: %+v", info)
	}
	if !info.Rates.PricePerNight.Equal(decimal.RequireFromString("150")) {
		t.Errorf("price per night = %s, want 150", info.Rates.PricePerNight)
	}
	if !info.Rates.TaxRate.Equal(decimal.RequireFromString("0.10")) {
		t.Errorf("tax rate = %s, want 0.10", info.Rates.TaxRate)
	}
}

func TestRoomCatalogAdapterUnknownRoom(t *testing.T) {
	adapter := &roomCatalogAdapter{rooms: &stubRoomRepo{}}
	info, err := adapter.GetForBooking(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("GetForBooking() error = %v", err)
	}
	if info != nil {
		t.Fatalf("expected nil info for unknown room, got %+v", info)
	}
}
