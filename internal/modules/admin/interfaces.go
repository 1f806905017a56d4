package admin

import (
	"context"

	"bookhub/internal/domain"
)

type TenantRepository interface {
	Create(ctx context.Context, t *domain.Tenant) error
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	Update(ctx context.Context, t *domain.Tenant) error
	List(ctx context.Context, limit, offset int) ([]domain.Tenant, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	List(ctx context.Context, tenantID int64, limit, offset int) ([]domain.User, error)
	SetQuota(ctx context.Context, tenantID, id int64, quota *int) error
}

type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
	ListByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.AuditLog, error)
}
