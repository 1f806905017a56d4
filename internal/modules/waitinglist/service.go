package waitinglist

import (
	"context"
	"math"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"

	"go.uber.org/zap"
)

type Service struct {
	entries   WaitingListRepository
	resources ResourceProvider
	checker   AvailabilityChecker
	notifs    NotificationSender
	logger    *zap.Logger
}

func NewService(
	entries WaitingListRepository,
	resources ResourceProvider,
	checker AvailabilityChecker,
	notifs NotificationSender,
	logger *zap.Logger,
) *Service {
	return &Service{
		entries:   entries,
		resources: resources,
		checker:   checker,
		notifs:    notifs,
		logger:    logger,
	}
}

// Join queues a booking request for a slot that is currently taken.
func (s *Service) Join(ctx context.Context, tenantID, userID int64, resourceID int64, date time.Time, start, end string, priority int) (*domain.WaitingListEntry, error) {
	startM, err := domain.ClockMinutes(start)
	if err != nil {
		return nil, ErrValidation
	}
	endM, err := domain.ClockMinutes(end)
	if err != nil {
		return nil, ErrValidation
	}
	if endM <= startM {
		return nil, ErrValidation
	}

	if _, err := s.resources.GetByID(ctx, tenantID, resourceID); err != nil {
		return nil, ErrNotFound
	}

	e := &domain.WaitingListEntry{
		TenantID:   tenantID,
		ResourceID: resourceID,
		UserID:     userID,
		Date:       domain.DateOnly(date),
		StartTime:  start,
		EndTime:    end,
		Priority:   priority,
		Status:     domain.WaitingActive,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// CheckAndPromote offers a freed slot to the waiting list. The winning entry
// is the active one matching the slot exactly with the highest priority,
// ties broken by earliest creation. The availability check is re-run before
// the atomic promote; if the slot turns out not to be free (another booking
// grabbed it, or a maintenance window appeared), no entry is touched.
//
// Returns the created booking, or nil when there was nothing to promote.
func (s *Service) CheckAndPromote(ctx context.Context, tenantID, resourceID int64, date time.Time, start, end string) (*domain.Booking, error) {
	entry, err := s.entries.FindActiveForSlot(ctx, resourceID, date, start, end)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	res, err := s.resources.GetByID(ctx, tenantID, resourceID)
	if err != nil {
		return nil, err
	}

	conflict, err := s.checker.Check(ctx, res, date, start, end, 0)
	if err != nil {
		return nil, err
	}
	if conflict != availability.ConflictNone {
		s.logger.Debug("freed slot no longer available, leaving waiting list untouched",
			zap.Int64("resource_id", resourceID),
			zap.String("conflict", string(conflict)),
		)
		return nil, nil
	}

	startM, _ := domain.ClockMinutes(start)
	endM, _ := domain.ClockMinutes(end)
	duration := float64(endM-startM) / 60
	total := math.Round(res.PricePerHour*duration*100) / 100

	b := &domain.Booking{
		TenantID:      tenantID,
		ResourceID:    resourceID,
		UserID:        entry.UserID,
		Date:          domain.DateOnly(date),
		StartTime:     start,
		EndTime:       end,
		DurationHours: duration,
		TotalPrice:    total,
		Status:        domain.BookingPending,
	}

	// Promote is transactional: either the entry is marked promoted and the
	// booking exists, or neither happened.
	if err := s.entries.Promote(ctx, entry.ID, b); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyWaitingPromoted(ctx, entry.UserID, b.ID, resourceID, date, start)
	}
	return b, nil
}

// CancelEntry lets a user withdraw their own active entry.
func (s *Service) CancelEntry(ctx context.Context, tenantID, userID, entryID int64) error {
	e, err := s.entries.GetByID(ctx, tenantID, entryID)
	if err != nil {
		return ErrNotFound
	}
	if e.UserID != userID {
		return ErrForbidden
	}
	if e.Status != domain.WaitingActive {
		return ErrValidation
	}
	return s.entries.UpdateStatus(ctx, entryID, domain.WaitingCancelled)
}

func (s *Service) ListMine(ctx context.Context, tenantID, userID int64) ([]domain.WaitingListEntry, error) {
	return s.entries.ListByUser(ctx, tenantID, userID)
}

func (s *Service) ListByResource(ctx context.Context, tenantID, resourceID int64) ([]domain.WaitingListEntry, error) {
	return s.entries.ListByResource(ctx, tenantID, resourceID)
}
