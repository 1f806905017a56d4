package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockMinutes(t *testing.T) {
	m, err := ClockMinutes("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = ClockMinutes("00:00")
	assert.NoError(t, err)
	assert.Equal(t, 0, m)

	_, err = ClockMinutes("930")
	assert.Error(t, err)

	_, err = ClockMinutes("25:00")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	assert.True(t, Overlaps(600, 720, 660, 780))
	assert.True(t, Overlaps(600, 720, 540, 630))
	assert.True(t, Overlaps(600, 720, 630, 690))

	// Back-to-back intervals touch but never overlap.
	assert.False(t, Overlaps(600, 720, 720, 780))
	assert.False(t, Overlaps(720, 780, 600, 720))
	assert.False(t, Overlaps(600, 660, 720, 780))
}

func TestDateOnly(t *testing.T) {
	d := DateOnly(time.Date(2025, 11, 5, 14, 30, 12, 99, time.FixedZone("X", 3600)))
	assert.Equal(t, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), d)
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingPending.CanTransitionTo(BookingApproved))
	assert.True(t, BookingPending.CanTransitionTo(BookingRejected))
	assert.True(t, BookingPending.CanTransitionTo(BookingCancelled))
	assert.True(t, BookingApproved.CanTransitionTo(BookingCancelled))

	assert.False(t, BookingApproved.CanTransitionTo(BookingRejected))
	assert.False(t, BookingRejected.CanTransitionTo(BookingApproved))
	assert.False(t, BookingCancelled.CanTransitionTo(BookingPending))
}

func TestMaintenanceCovers(t *testing.T) {
	m := MaintenanceSchedule{
		StartDate: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, m.Covers(time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)))
	assert.True(t, m.Covers(time.Date(2025, 11, 11, 0, 0, 0, 0, time.UTC)))
	assert.True(t, m.Covers(time.Date(2025, 11, 12, 23, 0, 0, 0, time.UTC)))
	assert.False(t, m.Covers(time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, m.Covers(time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC)))
}
