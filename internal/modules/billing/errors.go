package billing

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrPlanNotFound   = errors.New("plan not found")
	ErrNoSubscription = errors.New("no active subscription")
	ErrNotFound       = errors.New("not found")
)
