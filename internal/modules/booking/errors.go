package booking

import (
	"errors"
	"fmt"

	"bookhub/internal/modules/availability"
)

var (
	ErrValidation              = errors.New("validation error")
	ErrQuotaExceeded           = errors.New("monthly booking quota reached")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrCancellationWindow      = errors.New("cancellation window has passed")
	ErrForbidden               = errors.New("forbidden")
	ErrNotFound                = errors.New("booking not found")
)

// ConflictError carries the specific availability conflict so handlers can
// tell the user why the slot was refused.
type ConflictError struct {
	Reason availability.Conflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot not available: %s", e.Reason)
}

// RuleRejectionError reports which business rule refused the booking.
type RuleRejectionError struct {
	Rule string
}

func (e *RuleRejectionError) Error() string {
	return fmt.Sprintf("booking rejected by rule %q", e.Rule)
}
