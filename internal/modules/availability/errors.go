package availability

import "errors"

var (
	// ErrInvalidInterval rejects zero-length or inverted intervals before any
	// conflict check runs.
	ErrInvalidInterval = errors.New("end time must be after start time")
)
