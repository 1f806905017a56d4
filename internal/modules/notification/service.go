package notification

import (
	"context"
	"fmt"
	"time"

	"bookhub/internal/domain"

	"go.uber.org/zap"
)

// Service writes in-app notifications. The Notify* methods are called from
// other modules after their own state change has committed; a failed insert
// must never roll the caller back, so every Notify* swallows errors into a
// warning log and the error return exists only for the callers' interfaces.
type Service struct {
	notifs NotificationRepository
	logger *zap.Logger
}

func NewService(notifs NotificationRepository, logger *zap.Logger) *Service {
	return &Service{notifs: notifs, logger: logger}
}

func (s *Service) NotifyBookingCreated(ctx context.Context, userID, bookingID, resourceID int64, date time.Time, start string) error {
	return s.create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingCreated,
		Title:   "Booking received",
		Message: fmt.Sprintf("Your booking for %s at %s is awaiting approval.", date.Format("2006-01-02"), start),
		Data:    map[string]any{"booking_id": bookingID, "resource_id": resourceID},
	})
}

func (s *Service) NotifyBookingApproved(ctx context.Context, userID, bookingID int64) error {
	return s.create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingApproved,
		Title:   "Booking approved",
		Message: "Your booking has been approved.",
		Data:    map[string]any{"booking_id": bookingID},
	})
}

func (s *Service) NotifyBookingRejected(ctx context.Context, userID, bookingID int64, comment string) error {
	msg := "Your booking has been rejected."
	if comment != "" {
		msg = fmt.Sprintf("Your booking has been rejected: %s", comment)
	}
	return s.create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingRejected,
		Title:   "Booking rejected",
		Message: msg,
		Data:    map[string]any{"booking_id": bookingID},
	})
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string, refund float64) error {
	return s.create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifBookingCancelled,
		Title:   "Booking cancelled",
		Message: fmt.Sprintf("Your booking was cancelled. Refund: %.2f", refund),
		Data:    map[string]any{"booking_id": bookingID, "reason": reason, "refund": refund},
	})
}

func (s *Service) NotifyWaitingPromoted(ctx context.Context, userID, bookingID, resourceID int64, date time.Time, start string) error {
	return s.create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotifWaitingPromoted,
		Title:   "Slot available",
		Message: fmt.Sprintf("A slot opened up on %s at %s and was booked for you.", date.Format("2006-01-02"), start),
		Data:    map[string]any{"booking_id": bookingID, "resource_id": resourceID},
	})
}

func (s *Service) NotifyApprovalRequired(ctx context.Context, approverID, bookingID int64) error {
	return s.create(ctx, &domain.Notification{
		UserID:  approverID,
		Type:    domain.NotifApprovalRequired,
		Title:   "Approval required",
		Message: "A booking is waiting for your decision.",
		Data:    map[string]any{"booking_id": bookingID},
	})
}

func (s *Service) create(ctx context.Context, n *domain.Notification) error {
	if err := s.notifs.Create(ctx, n); err != nil {
		s.logger.Warn("notification insert failed",
			zap.Int64("user_id", n.UserID),
			zap.String("type", string(n.Type)),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.notifs.GetByUserID(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID int64) (int64, error) {
	return s.notifs.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.notifs.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID int64) error {
	return s.notifs.MarkAllAsRead(ctx, userID)
}
