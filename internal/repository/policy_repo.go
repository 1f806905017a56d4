package repository

import (
	"context"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type PolicyRepository struct {
	db *gorm.DB
}

func NewPolicyRepository(db *gorm.DB) *PolicyRepository {
	return &PolicyRepository{db: db}
}

// GetForResource resolves the effective cancellation policy: a
// resource-specific row wins over the tenant-wide default (resource_id IS
// NULL). Returns nil when neither exists.
func (r *PolicyRepository) GetForResource(ctx context.Context, tenantID, resourceID int64) (*domain.CancellationPolicy, error) {
	var p domain.CancellationPolicy
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND resource_id = ?", tenantID, resourceID).
		First(&p).Error
	if err == nil {
		return &p, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Where("tenant_id = ? AND resource_id IS NULL", tenantID).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PolicyRepository) Create(ctx context.Context, p *domain.CancellationPolicy) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PolicyRepository) Update(ctx context.Context, p *domain.CancellationPolicy) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PolicyRepository) List(ctx context.Context, tenantID int64) ([]domain.CancellationPolicy, error) {
	var out []domain.CancellationPolicy
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("resource_id ASC").
		Find(&out).Error
	return out, err
}

func (r *PolicyRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&domain.CancellationPolicy{}).Error
}
