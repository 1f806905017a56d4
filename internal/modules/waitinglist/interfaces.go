package waitinglist

import (
	"context"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"
)

type WaitingListRepository interface {
	Create(ctx context.Context, e *domain.WaitingListEntry) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.WaitingListEntry, error)
	FindActiveForSlot(ctx context.Context, resourceID int64, date time.Time, start, end string) (*domain.WaitingListEntry, error)
	Promote(ctx context.Context, entryID int64, b *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.WaitingStatus) error
	ListByUser(ctx context.Context, tenantID, userID int64) ([]domain.WaitingListEntry, error)
	ListByResource(ctx context.Context, tenantID, resourceID int64) ([]domain.WaitingListEntry, error)
}

type ResourceProvider interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error)
}

type AvailabilityChecker interface {
	Check(ctx context.Context, res *domain.Resource, date time.Time, start, end string, excludeID int64) (availability.Conflict, error)
}

type NotificationSender interface {
	NotifyWaitingPromoted(ctx context.Context, userID, bookingID, resourceID int64, date time.Time, start string) error
}
