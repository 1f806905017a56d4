package repository

import (
	"context"
	"time"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type ApprovalRepository struct {
	db *gorm.DB
}

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

func (r *ApprovalRepository) WithTx(tx *gorm.DB) *ApprovalRepository {
	return &ApprovalRepository{db: tx}
}

// CreateLevels seeds n pending approval levels, numbered from 1.
func (r *ApprovalRepository) CreateLevels(ctx context.Context, bookingID int64, n int) error {
	for level := 1; level <= n; level++ {
		l := domain.ApprovalLevel{
			BookingID: bookingID,
			Level:     level,
			Status:    domain.ApprovalPending,
		}
		if err := r.db.WithContext(ctx).Create(&l).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ApprovalRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ApprovalLevel, error) {
	var out []domain.ApprovalLevel
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("level ASC").
		Find(&out).Error
	return out, err
}

func (r *ApprovalRepository) GetLevel(ctx context.Context, bookingID int64, level int) (*domain.ApprovalLevel, error) {
	var l domain.ApprovalLevel
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND level = ?", bookingID, level).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ApprovalRepository) Decide(ctx context.Context, id, approverID int64, status domain.ApprovalStatus, comment string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&domain.ApprovalLevel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"approver_id": approverID,
			"status":      status,
			"comment":     comment,
			"decided_at":  now,
		}).Error
}

func (r *ApprovalRepository) CountApproved(ctx context.Context, bookingID int64) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.ApprovalLevel{}).
		Where("booking_id = ? AND status = ?", bookingID, domain.ApprovalApproved).
		Count(&cnt).Error
	return cnt, err
}
