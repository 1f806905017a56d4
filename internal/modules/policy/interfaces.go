package policy

import (
	"context"

	"bookhub/internal/domain"
)

type PolicyRepository interface {
	GetForResource(ctx context.Context, tenantID, resourceID int64) (*domain.CancellationPolicy, error)
	Create(ctx context.Context, p *domain.CancellationPolicy) error
	List(ctx context.Context, tenantID int64) ([]domain.CancellationPolicy, error)
	Delete(ctx context.Context, tenantID, id int64) error
}

type AuditAppender interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
}
