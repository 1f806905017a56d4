package resource

import (
	"context"

	"bookhub/internal/domain"
)

type ResourceRepository interface {
	Create(ctx context.Context, res *domain.Resource) error
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error)
	Update(ctx context.Context, res *domain.Resource) error
	SoftDelete(ctx context.Context, tenantID, id int64) error
	List(ctx context.Context, tenantID int64, category string, limit, offset int) ([]domain.Resource, error)
	AddMaintenance(ctx context.Context, m *domain.MaintenanceSchedule) error
	ListMaintenance(ctx context.Context, resourceID int64) ([]domain.MaintenanceSchedule, error)
	DeleteMaintenance(ctx context.Context, resourceID, id int64) error
}
