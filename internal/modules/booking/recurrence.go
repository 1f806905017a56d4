package booking

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"
	"bookhub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxOccurrences bounds a single expansion run; a year of daily bookings is
// far beyond any legitimate request.
const maxOccurrences = 366

// ExpandDates lists candidate occurrence dates strictly after base, up to
// and including until, stepping by the frequency. The base date itself is
// booked separately and never appears in the result.
func ExpandDates(base, until time.Time, f domain.Frequency) []time.Time {
	base = domain.DateOnly(base)
	until = domain.DateOnly(until)

	var out []time.Time
	for d := nextOccurrence(base, f); !d.After(until); d = nextOccurrence(d, f) {
		out = append(out, d)
		if len(out) >= maxOccurrences {
			break
		}
	}
	return out
}

func nextOccurrence(d time.Time, f domain.Frequency) time.Time {
	switch f {
	case domain.FrequencyDaily:
		return d.AddDate(0, 0, 1)
	case domain.FrequencyWeekly:
		return d.AddDate(0, 0, 7)
	case domain.FrequencyMonthly:
		return d.AddDate(0, 1, 0)
	default:
		// Unreachable after request validation; step by a day so the loop
		// still terminates.
		return d.AddDate(0, 0, 1)
	}
}

// parseRecurrence validates the recurrence fields of a create request and
// stamps them onto the base booking before it is persisted.
func parseRecurrence(b *domain.Booking, req CreateBookingRequest) error {
	freq := domain.Frequency(req.Frequency)
	switch freq {
	case domain.FrequencyDaily, domain.FrequencyWeekly, domain.FrequencyMonthly:
	default:
		return ErrValidation
	}

	until, err := time.Parse("2006-01-02", req.Until)
	if err != nil {
		return ErrValidation
	}
	until = domain.DateOnly(until)
	if until.Before(b.Date) {
		return ErrValidation
	}

	b.IsRecurring = true
	b.Frequency = &freq
	b.RecursUntil = &until
	b.RecurrenceGroup = uuid.NewString()
	return nil
}

// expandRecurring materializes the occurrences of a recurring booking.
// Every candidate is availability-checked independently; conflicting
// occurrences are skipped without failing the run, everything else is
// persisted as a pending child of the base booking.
func (s *Service) expandRecurring(ctx context.Context, base *domain.Booking, res *domain.Resource, requiredApprovals int) error {
	for _, date := range ExpandDates(base.Date, *base.RecursUntil, *base.Frequency) {
		conflict, err := s.checker.Check(ctx, res, date, base.StartTime, base.EndTime, 0)
		if err != nil {
			return err
		}
		if conflict != availability.ConflictNone {
			s.logger.Debug("skipping conflicting occurrence",
				zap.Int64("parent_booking_id", base.ID),
				zap.Time("date", date),
				zap.String("conflict", string(conflict)),
			)
			continue
		}

		child := &domain.Booking{
			TenantID:        base.TenantID,
			ResourceID:      base.ResourceID,
			UserID:          base.UserID,
			Date:            date,
			StartTime:       base.StartTime,
			EndTime:         base.EndTime,
			DurationHours:   base.DurationHours,
			TotalPrice:      base.TotalPrice,
			Status:          domain.BookingPending,
			RecurrenceGroup: base.RecurrenceGroup,
			ParentBookingID: &base.ID,
		}
		if err := s.bookings.CreateAtomic(ctx, child, requiredApprovals); err != nil {
			if errors.Is(err, repository.ErrSlotTaken) {
				// Lost to a concurrent writer between check and insert; the
				// occurrence is skipped like any other conflict.
				continue
			}
			return err
		}
	}
	return nil
}
