package repository

import (
	"context"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) DB() *gorm.DB { return r.db }

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND email = ? AND deleted_at IS NULL", tenantID, email).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) List(ctx context.Context, tenantID int64, limit, offset int) ([]domain.User, error) {
	var out []domain.User
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND deleted_at IS NULL", tenantID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *UserRepository) SetQuota(ctx context.Context, tenantID, id int64, quota *int) error {
	return r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Update("monthly_quota", quota).Error
}
