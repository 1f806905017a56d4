package approval

import (
	"context"

	"bookhub/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	approvals ApprovalRepository
	bookings  BookingStore
	promoter  Promoter
	notifs    NotificationSender
	audit     AuditAppender
	logger    *zap.Logger
}

func NewService(
	approvals ApprovalRepository,
	bookings BookingStore,
	promoter Promoter,
	notifs NotificationSender,
	audit AuditAppender,
	logger *zap.Logger,
) *Service {
	return &Service{
		approvals: approvals,
		bookings:  bookings,
		promoter:  promoter,
		notifs:    notifs,
		audit:     audit,
		logger:    logger,
	}
}

// Chain reports the approval levels for a booking.
func (s *Service) Chain(ctx context.Context, tenantID, bookingID int64) ([]domain.ApprovalLevel, error) {
	if _, err := s.bookings.GetByID(ctx, tenantID, bookingID); err != nil {
		return nil, ErrNotFound
	}
	return s.approvals.ListByBooking(ctx, bookingID)
}

// Decide records an approver's verdict on one level. A single rejection
// rejects the whole booking and offers its slot to the waiting list. The
// booking is approved once every level is approved. Levels are independent:
// any pending level can be decided in any order.
func (s *Service) Decide(ctx context.Context, tenantID, approverID, bookingID int64, level int, approve bool, comment string) (*domain.Booking, error) {
	if level < 1 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, tenantID, bookingID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Status != domain.BookingPending {
		return nil, ErrBookingState
	}

	l, err := s.approvals.GetLevel(ctx, bookingID, level)
	if err != nil {
		return nil, ErrNotFound
	}
	if l.Status != domain.ApprovalPending {
		return nil, ErrAlreadyDecided
	}

	verdict := domain.ApprovalApproved
	if !approve {
		verdict = domain.ApprovalRejected
	}
	if err := s.approvals.Decide(ctx, l.ID, approverID, verdict, comment); err != nil {
		return nil, err
	}

	if !approve {
		if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingRejected); err != nil {
			return nil, err
		}
		s.appendAudit(ctx, tenantID, approverID, "booking.rejected", bookingID, map[string]any{
			"level":   level,
			"comment": comment,
		})
		if s.notifs != nil {
			_ = s.notifs.NotifyBookingRejected(ctx, b.UserID, bookingID, comment)
		}
		s.offerFreedSlot(ctx, b)
		return s.bookings.GetByID(ctx, tenantID, bookingID)
	}

	levels, err := s.approvals.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	approved, err := s.approvals.CountApproved(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if approved >= int64(len(levels)) {
		if err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingApproved); err != nil {
			return nil, err
		}
		s.appendAudit(ctx, tenantID, approverID, "booking.approved", bookingID, nil)
		if s.notifs != nil {
			_ = s.notifs.NotifyBookingApproved(ctx, b.UserID, bookingID)
		}
	}

	return s.bookings.GetByID(ctx, tenantID, bookingID)
}

// offerFreedSlot hands the rejected booking's slot to the waiting list.
// Promotion failures are logged, never surfaced to the approver.
func (s *Service) offerFreedSlot(ctx context.Context, b *domain.Booking) {
	if s.promoter == nil {
		return
	}
	promoted, err := s.promoter.CheckAndPromote(ctx, b.TenantID, b.ResourceID, b.Date, b.StartTime, b.EndTime)
	if err != nil {
		s.logger.Warn("waiting list promotion failed after rejection",
			zap.Int64("booking_id", b.ID),
			zap.Error(err),
		)
		return
	}
	if promoted != nil {
		s.logger.Info("waiting list entry promoted",
			zap.Int64("rejected_booking_id", b.ID),
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
		s.logger.Warn("audit append failed", zap.Error(err))
	}
}
