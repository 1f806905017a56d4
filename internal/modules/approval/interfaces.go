package approval

import (
	"context"
	"time"

	"bookhub/internal/domain"
)

type ApprovalRepository interface {
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.ApprovalLevel, error)
	GetLevel(ctx context.Context, bookingID int64, level int) (*domain.ApprovalLevel, error)
	Decide(ctx context.Context, id, approverID int64, status domain.ApprovalStatus, comment string) error
	CountApproved(ctx context.Context, bookingID int64) (int64, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// Promoter offers a freed slot to the waiting list after a rejection.
type Promoter interface {
	CheckAndPromote(ctx context.Context, tenantID, resourceID int64, date time.Time, start, end string) (*domain.Booking, error)
}

type NotificationSender interface {
	NotifyBookingApproved(ctx context.Context, userID, bookingID int64) error
	NotifyBookingRejected(ctx context.Context, userID, bookingID int64, comment string) error
}

type AuditAppender interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
}
