package restaurant

import "errors"

var (
	ErrDishNotFound    = errors.New("dish not found")
	ErrNoDishesChosen  = errors.New("at least one dish must be selected")
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrDateInPast      = errors.New("reservation date cannot be in the past")
)
