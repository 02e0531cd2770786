package booking

import (
	"time"
)

// MinGuests and MaxGuests bound the party size for a single booking.
const (
	MinGuests = 1
	MaxGuests = 10
)

// GuestCount is a party size clamped to [MinGuests, MaxGuests].
type GuestCount int

// NewGuestCount clamps n to the nearest bound. Out-of-range input is never
// rejected, only clamped.
func NewGuestCount(n int) GuestCount {
	if n < MinGuests {
		return MinGuests
	}
	if n > MaxGuests {
		return MaxGuests
	}
	return GuestCount(n)
}

// Int returns the guest count as a plain int.
func (g GuestCount) Int() int {
	return int(g)
}

// DatePolicy controls the check-in lower bound. Whether past check-in dates
// are bookable is a deployment decision, not a hard rule.
type DatePolicy struct {
	AllowPastCheckIn bool
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (p DatePolicy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// StayRange is a validated check-in/check-out date pair. Dates are held at
// day precision; time-of-day on input is ignored. A StayRange is immutable
// once constructed - changing dates means building a new one.
type StayRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// NewStayRange validates a proposed date range and returns an immutable
// StayRange. Fails with ErrCheckOutNotAfterCheckIn when checkOut is not
// strictly after checkIn, and with ErrCheckInInPast when the policy forbids
// past check-ins and checkIn is before today.
func NewStayRange(checkIn, checkOut time.Time, policy DatePolicy) (StayRange, error) {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)

	if !out.After(in) {
		return StayRange{}, ErrCheckOutNotAfterCheckIn
	}

	if !policy.AllowPastCheckIn {
		today := truncateToDay(policy.now())
		if in.Before(today) {
			return StayRange{}, ErrCheckInInPast
		}
	}

	return StayRange{checkIn: in, checkOut: out}, nil
}

// CheckIn returns the check-in date (midnight UTC of the selected day).
func (r StayRange) CheckIn() time.Time {
	return r.checkIn
}

// CheckOut returns the check-out date.
func (r StayRange) CheckOut() time.Time {
	return r.checkOut
}

// Nights returns the billable night count for the range.
func (r StayRange) Nights() int {
	return NightsBetween(r.checkIn, r.checkOut)
}

// NightsBetween computes billable nights as the ceiling of the whole-day
// difference between checkOut and checkIn, with a floor of one night. A
// same-day or sub-day span still bills for one night; that is deliberate,
// not an error.
func NightsBetween(checkIn, checkOut time.Time) int {
	hours := checkOut.Sub(checkIn).Hours()
	nights := int(hours / 24)
	if hours > float64(nights)*24 {
		nights++
	}
	if nights < 1 {
		nights = 1
	}
	return nights
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
