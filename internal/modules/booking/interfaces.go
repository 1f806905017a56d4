package booking

import (
	"context"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"
	"bookhub/internal/modules/rules"
)

// BookingRepository is the persistence surface the service needs.
type BookingRepository interface {
	CreateAtomic(ctx context.Context, b *domain.Booking, requiredApprovals int) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	CountForUserInMonth(ctx context.Context, tenantID, userID int64, monthStart time.Time) (int64, error)
	Cancel(ctx context.Context, id int64, reason string, refund float64) error
	ListByUser(ctx context.Context, tenantID, userID int64, limit, offset int) ([]domain.Booking, error)
	ListPendingByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Booking, error)
	ListByRecurrenceGroup(ctx context.Context, group string) ([]domain.Booking, error)
}

type ResourceProvider interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error)
}

type UserProvider interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type AvailabilityChecker interface {
	Check(ctx context.Context, res *domain.Resource, date time.Time, start, end string, excludeID int64) (availability.Conflict, error)
}

type RuleEvaluator interface {
	Evaluate(ctx context.Context, tenantID int64, in rules.Input) (rules.Outcome, error)
}

// CancellationGate answers whether a booking may be cancelled and under
// which policy.
type CancellationGate interface {
	CanCancel(ctx context.Context, b *domain.Booking) (bool, *domain.CancellationPolicy, error)
}

// Promoter is consulted after a slot frees up; implemented by the waiting
// list service.
type Promoter interface {
	CheckAndPromote(ctx context.Context, tenantID, resourceID int64, date time.Time, start, end string) (*domain.Booking, error)
}

type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID, bookingID, resourceID int64, date time.Time, start string) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, reason string, refund float64) error
}

type AuditAppender interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
}
