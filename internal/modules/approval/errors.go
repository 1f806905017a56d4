package approval

import "errors"

var (
	ErrNotFound       = errors.New("approval level not found")
	ErrBookingState   = errors.New("booking is not awaiting approval")
	ErrAlreadyDecided = errors.New("approval level already decided")
	ErrValidation     = errors.New("validation error")
)
