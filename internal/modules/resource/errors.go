package resource

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("resource not found")
)
