package availability

import (
	"context"
	"time"

	"bookhub/internal/domain"
)

// OverlapCounter counts pending/approved bookings intersecting a slot.
type OverlapCounter interface {
	CountOverlapping(ctx context.Context, resourceID int64, date time.Time, start, end string, excludeID int64) (int64, error)
}

// MaintenanceLister returns the maintenance windows of a resource.
type MaintenanceLister interface {
	ListMaintenance(ctx context.Context, resourceID int64) ([]domain.MaintenanceSchedule, error)
}

// ResourceProvider loads a resource within a tenant.
type ResourceProvider interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error)
}
