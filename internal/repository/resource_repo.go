package repository

import (
	"context"

	"bookhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) WithTx(tx *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: tx}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *ResourceRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error) {
	var res domain.Resource
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", id, tenantID).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// GetByIDForUpdate takes a row-level lock on the resource so two concurrent
// booking inserts for the same resource serialize their availability checks.
// Must be called inside a transaction.
func (r *ResourceRepository) GetByIDForUpdate(ctx context.Context, tenantID, id int64) (*domain.Resource, error) {
	var res domain.Resource
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", id, tenantID).
		First(&res).Error
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	return r.db.WithContext(ctx).Save(res).Error
}

func (r *ResourceRepository) SoftDelete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).Model(&domain.Resource{}).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", id, tenantID).
		Update("deleted_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}

func (r *ResourceRepository) List(ctx context.Context, tenantID int64, category string, limit, offset int) ([]domain.Resource, error) {
	q := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var out []domain.Resource
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&out).Error
	return out, err
}

func (r *ResourceRepository) AddMaintenance(ctx context.Context, m *domain.MaintenanceSchedule) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ResourceRepository) ListMaintenance(ctx context.Context, resourceID int64) ([]domain.MaintenanceSchedule, error) {
	var out []domain.MaintenanceSchedule
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("start_date ASC").
		Find(&out).Error
	return out, err
}

func (r *ResourceRepository) DeleteMaintenance(ctx context.Context, resourceID, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND resource_id = ?", id, resourceID).
		Delete(&domain.MaintenanceSchedule{}).Error
}
