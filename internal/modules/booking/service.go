package booking

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"
	"bookhub/internal/modules/policy"
	"bookhub/internal/modules/rules"
	"bookhub/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type Service struct {
	bookings  BookingRepository
	resources ResourceProvider
	users     UserProvider
	checker   AvailabilityChecker
	rules     RuleEvaluator
	gate      CancellationGate
	promoter  Promoter
	notifs    NotificationSender
	audit     AuditAppender
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	bookings BookingRepository,
	resources ResourceProvider,
	users UserProvider,
	checker AvailabilityChecker,
	ruleEngine RuleEvaluator,
	gate CancellationGate,
	promoter Promoter,
	notifs NotificationSender,
	audit AuditAppender,
	logger *zap.Logger,
) *Service {
	return &Service{
		bookings:  bookings,
		resources: resources,
		users:     users,
		checker:   checker,
		rules:     ruleEngine,
		gate:      gate,
		promoter:  promoter,
		notifs:    notifs,
		audit:     audit,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates, prices and persists a booking request. The availability
// check runs twice: once up front for fast feedback and again inside the
// insert transaction under a resource lock, so a race between two requests
// for the same slot is resolved by whichever commit wins.
func (s *Service) Create(ctx context.Context, tenantID, userID int64, role string, req CreateBookingRequest) (*domain.Booking, error) {
	date, startM, endM, err := parseSlot(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	duration := float64(endM-startM) / 60

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	reached, err := s.hasReachedQuota(ctx, tenantID, user)
	if err != nil {
		return nil, err
	}
	if reached {
		return nil, ErrQuotaExceeded
	}

	res, err := s.resources.GetByID(ctx, tenantID, req.ResourceID)
	if err != nil {
		return nil, ErrNotFound
	}

	conflict, err := s.checker.Check(ctx, res, date, req.StartTime, req.EndTime, 0)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInterval) {
			return nil, ErrValidation
		}
		return nil, err
	}
	if conflict != availability.ConflictNone {
		return nil, &ConflictError{Reason: conflict}
	}

	outcome, err := s.rules.Evaluate(ctx, tenantID, rules.Input{
		DurationHours: duration,
		Category:      string(res.Category),
		Capacity:      res.Capacity,
		StartHour:     startM / 60,
		Weekday:       strings.ToLower(date.Weekday().String()),
		UserRole:      role,
	})
	if err != nil {
		return nil, err
	}
	if outcome.Reject {
		return nil, &RuleRejectionError{Rule: outcome.RejectedBy}
	}

	requiredApprovals := res.RequiredApprovals
	if outcome.RequiredApprovals > requiredApprovals {
		requiredApprovals = outcome.RequiredApprovals
	}

	total := res.PricePerHour * duration
	total = math.Round(total*100) / 100

	b := &domain.Booking{
		TenantID:      tenantID,
		ResourceID:    res.ID,
		UserID:        userID,
		Date:          date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		DurationHours: duration,
		TotalPrice:    total,
		Status:        domain.BookingPending,
	}
	if req.IsRecurring {
		if err := parseRecurrence(b, req); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.CreateAtomic(ctx, b, requiredApprovals); err != nil {
		return nil, mapCreateError(err)
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, userID, b.ID, res.ID, date, req.StartTime)
	}
	s.appendAudit(ctx, tenantID, userID, "booking.create", b.ID, map[string]any{
		"resource_id": res.ID,
		"date":        req.Date,
		"start":       req.StartTime,
		"end":         req.EndTime,
	})

	if req.IsRecurring {
		if err := s.expandRecurring(ctx, b, res, requiredApprovals); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// Cancel moves a booking to cancelled if the owner (or a manager) asks for
// it, the status machine allows it, and the cancellation policy window has
// not passed. A policy that blocks the cancellation refuses it outright; no
// zero-refund cancellation happens. After the cancellation the freed slot is
// offered to the waiting list.
func (s *Service) Cancel(ctx context.Context, tenantID, bookingID, actorID int64, role, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}

	if b.UserID != actorID && role != string(domain.RoleManager) && role != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return nil, ErrInvalidStatusTransition
	}

	cancellable, pol, err := s.gate.CanCancel(ctx, b)
	if err != nil {
		return nil, err
	}
	if !cancellable {
		return nil, ErrCancellationWindow
	}

	refund := policy.CalculateRefund(pol, b.TotalPrice, cancellable)
	if err := s.bookings.Cancel(ctx, bookingID, reason, refund); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.ID, reason, refund)
	}
	s.appendAudit(ctx, tenantID, actorID, "booking.cancel", b.ID, map[string]any{
		"reason": reason,
		"refund": refund,
	})

	s.offerFreedSlot(ctx, b)

	b, err = s.bookings.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, tenantID, userID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListByUser(ctx, tenantID, userID, limit, offset)
}

func (s *Service) ListPending(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.bookings.ListPendingByTenant(ctx, tenantID, limit, offset)
}

// hasReachedQuota counts the user's non-cancelled bookings in the current
// calendar month. A nil quota means unlimited. The quota is only consulted
// at creation time.
func (s *Service) hasReachedQuota(ctx context.Context, tenantID int64, user *domain.User) (bool, error) {
	if user.MonthlyQuota == nil {
		return false, nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cnt, err := s.bookings.CountForUserInMonth(ctx, tenantID, user.ID, monthStart)
	if err != nil {
		return false, err
	}
	return cnt >= int64(*user.MonthlyQuota), nil
}

// offerFreedSlot gives the slot to the waiting list. Promotion failure is
// logged, never propagated: the cancellation already committed.
func (s *Service) offerFreedSlot(ctx context.Context, b *domain.Booking) {
	if s.promoter == nil {
		return
	}
	promoted, err := s.promoter.CheckAndPromote(ctx, b.TenantID, b.ResourceID, b.Date, b.StartTime, b.EndTime)
	if err != nil {
		s.logger.Warn("waiting list promotion failed",
			zap.Int64("booking_id", b.ID),
			zap.Int64("resource_id", b.ResourceID),
			zap.Error(err),
		)
		return
	}
	if promoted != nil {
		s.logger.Info("waiting list entry promoted",
			zap.Int64("freed_booking_id", b.ID),
			zap.Int64("new_booking_id", promoted.ID),
		)
	}
}

func (s *Service) appendAudit(ctx context.Context, tenantID, actorID int64, action string, entityID int64, detail map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Append(ctx, &domain.AuditLog{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   action,
		Entity:   "booking",
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("audit append failed", zap.String("action", action), zap.Error(err))
	}
}

func parseSlot(dateStr, start, end string) (time.Time, int, int, error) {
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrValidation
	}
	startM, err := domain.ClockMinutes(start)
	if err != nil {
		return time.Time{}, 0, 0, ErrValidation
	}
	endM, err := domain.ClockMinutes(end)
	if err != nil {
		return time.Time{}, 0, 0, ErrValidation
	}
	if endM <= startM {
		return time.Time{}, 0, 0, ErrValidation
	}
	return domain.DateOnly(date), startM, endM, nil
}

// mapCreateError converts low-level insert failures into conflict errors.
// The partial unique index on (resource_id, date, start_time) backs up the
// in-transaction overlap check for exact duplicates.
func mapCreateError(err error) error {
	if errors.Is(err, repository.ErrSlotTaken) {
		return &ConflictError{Reason: availability.ConflictOverlap}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_no_double_booking" {
		return &ConflictError{Reason: availability.ConflictOverlap}
	}
	return err
}
