package booking_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pinehaven/pinehaven-api/internal/domain/booking"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func allowPast() booking.DatePolicy {
	return booking.DatePolicy{AllowPastCheckIn: true}
}

func TestNewStayRangeRejectsInvertedRange(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", date(2025, 3, 12), date(2025, 3, 10)},
		{"checkout equals checkin", date(2025, 3, 10), date(2025, 3, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.NewStayRange(tc.checkIn, tc.checkOut, allowPast())
			if !errors.Is(err, booking.ErrCheckOutNotAfterCheckIn) {
				t.Fatalf("expected ErrCheckOutNotAfterCheckIn, got %v", err)
			}
		})
	}
}

func TestNewStayRangeIgnoresTimeOfDay(t *testing.T) {
	// Late check-in and early check-out on consecutive days is still one
	// valid night; the range compares at day precision.
	checkIn := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	checkOut := time.Date(2025, 3, 11, 0, 15, 0, 0, time.UTC)

	rng, err := booking.NewStayRange(checkIn, checkOut, allowPast())
	if err != nil {
		t.Fatalf("expected valid range, got %v", err)
	}
	if got := rng.Nights(); got != 1 {
		t.Fatalf("expected 1 night, got %d", got)
	}
}

func TestNewStayRangePastCheckInPolicy(t *testing.T) {
	now := func() time.Time { return date(2025, 6, 15) }

	strict := booking.DatePolicy{AllowPastCheckIn: false, Now: now}
	_, err := booking.NewStayRange(date(2025, 6, 10), date(2025, 6, 12), strict)
	if !errors.Is(err, booking.ErrCheckInInPast) {
		t.Fatalf("expected ErrCheckInInPast, got %v", err)
	}

	lenient := booking.DatePolicy{AllowPastCheckIn: true, Now: now}
	if _, err := booking.NewStayRange(date(2025, 6, 10), date(2025, 6, 12), lenient); err != nil {
		t.Fatalf("lenient policy should accept past check-in, got %v", err)
	}

	// Today itself is never "in the past"
	if _, err := booking.NewStayRange(date(2025, 6, 15), date(2025, 6, 16), strict); err != nil {
		t.Fatalf("check-in today should be valid, got %v", err)
	}
}

func TestNightsBetween(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"same day floors to one night", date(2025, 3, 10), date(2025, 3, 10), 1},
		{"sub-day span floors to one night", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC), 1},
		{"one night", date(2025, 3, 10), date(2025, 3, 11), 1},
		{"two nights", date(2025, 3, 10), date(2025, 3, 12), 2},
		{"seven nights", date(2025, 3, 10), date(2025, 3, 17), 7},
		{"partial day rounds up", time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC), 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := booking.NightsBetween(tc.checkIn, tc.checkOut); got != tc.want {
				t.Fatalf("NightsBetween = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewGuestCountClamping(t *testing.T) {
	cases := []struct {
		input int
		want  int
	}{
		{-5, 1},
		{0, 1},
		{1, 1},
		{4, 4},
		{10, 10},
		{11, 10},
		{15, 10},
	}

	for _, tc := range cases {
		if got := booking.NewGuestCount(tc.input).Int(); got != tc.want {
			t.Fatalf("NewGuestCount(%d) = %d, want %d", tc.input, got, tc.want)
		}
	}
}
