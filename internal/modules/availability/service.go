package availability

import (
	"context"
	"time"

	"bookhub/internal/domain"
)

// Conflict is the reason a slot is not bookable. Empty means available.
type Conflict string

const (
	ConflictNone                Conflict = ""
	ConflictResourceUnavailable Conflict = "resource_unavailable"
	ConflictOutsideOpeningHours Conflict = "outside_opening_hours"
	ConflictMaintenance         Conflict = "maintenance"
	ConflictOverlap             Conflict = "overlapping_booking"
)

type Service struct {
	bookings    OverlapCounter
	maintenance MaintenanceLister
}

func NewService(bookings OverlapCounter, maintenance MaintenanceLister) *Service {
	return &Service{bookings: bookings, maintenance: maintenance}
}

// Check decides whether [start, end) on the given date is bookable for the
// resource. excludeID removes the booking being edited from the overlap
// comparison; pass 0 for new bookings.
//
// Order matters: interval validation first, then resource status, opening
// hours, maintenance windows, and finally overlapping bookings. All interval
// comparisons are half-open, so back-to-back bookings never conflict.
func (s *Service) Check(ctx context.Context, res *domain.Resource, date time.Time, start, end string, excludeID int64) (Conflict, error) {
	startM, err := domain.ClockMinutes(start)
	if err != nil {
		return ConflictNone, ErrInvalidInterval
	}
	endM, err := domain.ClockMinutes(end)
	if err != nil {
		return ConflictNone, ErrInvalidInterval
	}
	if endM <= startM {
		return ConflictNone, ErrInvalidInterval
	}

	if res.Status != domain.ResourceAvailable {
		return ConflictResourceUnavailable, nil
	}

	if outside, err := outsideOpeningHours(res, startM, endM); err != nil {
		return ConflictNone, err
	} else if outside {
		return ConflictOutsideOpeningHours, nil
	}

	windows, err := s.maintenance.ListMaintenance(ctx, res.ID)
	if err != nil {
		return ConflictNone, err
	}
	for i := range windows {
		if windows[i].Covers(date) {
			return ConflictMaintenance, nil
		}
	}

	cnt, err := s.bookings.CountOverlapping(ctx, res.ID, date, start, end, excludeID)
	if err != nil {
		return ConflictNone, err
	}
	if cnt > 0 {
		return ConflictOverlap, nil
	}

	return ConflictNone, nil
}

// outsideOpeningHours compares the half-open slot against [open, close).
// A booking ending exactly at closing time is allowed. Resources without
// configured hours accept any time of day.
func outsideOpeningHours(res *domain.Resource, startM, endM int) (bool, error) {
	if res.OpensAt == "" || res.ClosesAt == "" {
		return false, nil
	}
	openM, err := domain.ClockMinutes(res.OpensAt)
	if err != nil {
		return false, err
	}
	closeM, err := domain.ClockMinutes(res.ClosesAt)
	if err != nil {
		return false, err
	}
	return startM < openM || endM > closeM, nil
}
