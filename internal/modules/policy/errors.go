package policy

import "errors"

var ErrValidation = errors.New("invalid cancellation policy")
