package repository

import "errors"

var (
	// ErrSlotTaken is returned when the in-transaction overlap re-check finds
	// that a concurrent writer already took the slot.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrAlreadyPromoted is returned when a waiting-list entry lost the race
	// to another promotion.
	ErrAlreadyPromoted = errors.New("waiting list entry no longer active")
)
