package booking

import "errors"

var (
	ErrCheckOutNotAfterCheckIn = errors.New("check-out date must be after check-in date")
	ErrCheckInInPast           = errors.New("check-in date is in the past")
	ErrMissingIdentity         = errors.New("booking requires an authenticated identity")
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomUnavailable         = errors.New("room is not available for the selected dates")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrNotOwner                = errors.New("booking belongs to another user")
	ErrCancelWindowClosed      = errors.New("bookings can only be cancelled until 1 day before check-in")
	ErrSubmissionInFlight      = errors.New("a booking submission is already in progress")
)
