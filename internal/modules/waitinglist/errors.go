package waitinglist

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("waiting list entry not found")
	ErrForbidden  = errors.New("forbidden")
)
