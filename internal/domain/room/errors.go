package room

import "errors"

var (
	ErrNotFound     = errors.New("room not found")
	ErrInvalidPrice = errors.New("invalid price value")
)
