package review

import "errors"

var (
	ErrNotFound        = errors.New("review not found")
	ErrNotOwner        = errors.New("review belongs to another user")
	ErrAlreadyReviewed = errors.New("room already reviewed")
	ErrStayNotComplete = errors.New("no completed stay for this room")
)
