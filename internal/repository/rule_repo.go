package repository

import (
	"context"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type RuleRepository struct {
	db *gorm.DB
}

func NewRuleRepository(db *gorm.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) ListActive(ctx context.Context, tenantID int64) ([]domain.BusinessRule, error) {
	var out []domain.BusinessRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("priority DESC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *RuleRepository) Create(ctx context.Context, rule *domain.BusinessRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *RuleRepository) Update(ctx context.Context, rule *domain.BusinessRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *RuleRepository) Delete(ctx context.Context, tenantID, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&domain.BusinessRule{}).Error
}

func (r *RuleRepository) List(ctx context.Context, tenantID int64) ([]domain.BusinessRule, error) {
	var out []domain.BusinessRule
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("priority DESC, id ASC").
		Find(&out).Error
	return out, err
}
