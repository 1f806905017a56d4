package repository

import (
	"context"
	"time"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type WaitingListRepository struct {
	db *gorm.DB
}

func NewWaitingListRepository(db *gorm.DB) *WaitingListRepository {
	return &WaitingListRepository{db: db}
}

func (r *WaitingListRepository) WithTx(tx *gorm.DB) *WaitingListRepository {
	return &WaitingListRepository{db: tx}
}

func (r *WaitingListRepository) Create(ctx context.Context, e *domain.WaitingListEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *WaitingListRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.WaitingListEntry, error) {
	var e domain.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindActiveForSlot returns the winning active entry for an exact slot:
// highest priority first, ties broken by earliest creation.
func (r *WaitingListRepository) FindActiveForSlot(ctx context.Context, resourceID int64, date time.Time, start, end string) (*domain.WaitingListEntry, error) {
	var e domain.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND date = ? AND start_time = ? AND end_time = ? AND status = ?",
			resourceID, domain.DateOnly(date), start, end, domain.WaitingActive).
		Order("priority DESC, created_at ASC").
		First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Promote marks the entry promoted and creates its booking in one
// transaction. The guarded status update makes the operation safe against a
// concurrent promotion of the same entry; any failure rolls back both
// writes, so there is never a promoted entry without a booking.
func (r *WaitingListRepository) Promote(ctx context.Context, entryID int64, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.WaitingListEntry{}).
			Where("id = ? AND status = ?", entryID, domain.WaitingActive).
			Update("status", domain.WaitingPromoted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyPromoted
		}

		var cnt int64
		err := tx.Model(&domain.Booking{}).
			Where("resource_id = ? AND date = ? AND status IN ? AND deleted_at IS NULL",
				b.ResourceID, domain.DateOnly(b.Date), []domain.BookingStatus{domain.BookingPending, domain.BookingApproved}).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&cnt).Error
		if err != nil {
			return err
		}
		if cnt > 0 {
			return ErrSlotTaken
		}

		return tx.Create(b).Error
	})
}

func (r *WaitingListRepository) UpdateStatus(ctx context.Context, id int64, status domain.WaitingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.WaitingListEntry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *WaitingListRepository) ListByUser(ctx context.Context, tenantID, userID int64) ([]domain.WaitingListEntry, error) {
	var out []domain.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *WaitingListRepository) ListByResource(ctx context.Context, tenantID, resourceID int64) ([]domain.WaitingListEntry, error) {
	var out []domain.WaitingListEntry
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND resource_id = ? AND status = ?", tenantID, resourceID, domain.WaitingActive).
		Order("priority DESC, created_at ASC").
		Find(&out).Error
	return out, err
}
