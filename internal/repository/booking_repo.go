package repository

import (
	"context"
	"time"

	"bookhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BookingRepository) WithTx(tx *gorm.DB) *BookingRepository {
	return &BookingRepository{db: tx}
}

func (r *BookingRepository) DB() *gorm.DB { return r.db }

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// CreateAtomic inserts the booking together with its pending approval levels
// after re-checking for overlaps under a row-level lock on the resource.
// Two concurrent requests for the same slot serialize on the lock; the loser
// gets ErrSlotTaken and must be surfaced as a conflict to the caller.
func (r *BookingRepository) CreateAtomic(ctx context.Context, b *domain.Booking, requiredApprovals int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var res domain.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted_at IS NULL", b.ResourceID).
			First(&res).Error; err != nil {
			return err
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

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		for level := 1; level <= requiredApprovals; level++ {
			l := domain.ApprovalLevel{
				BookingID: b.ID,
				Level:     level,
				Status:    domain.ApprovalPending,
			}
			if err := tx.Create(&l).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ? AND deleted_at IS NULL", id, tenantID).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CountOverlapping counts pending/approved bookings on the same resource and
// date whose half-open [start_time, end_time) interval intersects the given
// one. Times are zero-padded "HH:MM" so string comparison orders correctly.
func (r *BookingRepository) CountOverlapping(ctx context.Context, resourceID int64, date time.Time, start, end string, excludeID int64) (int64, error) {
	var cnt int64
	q := `
SELECT COUNT(1)
FROM bookings
WHERE resource_id = ?
  AND date = ?
  AND status IN ('pending', 'approved')
  AND deleted_at IS NULL
  AND id <> ?
  AND start_time < ? AND end_time > ?
`
	tx := r.db.WithContext(ctx).Raw(q, resourceID, domain.DateOnly(date), excludeID, end, start).Scan(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// CountForUserInMonth counts a user's non-cancelled bookings with dates
// inside [monthStart, nextMonth).
func (r *BookingRepository) CountForUserInMonth(ctx context.Context, tenantID, userID int64, monthStart time.Time) (int64, error) {
	nextMonth := monthStart.AddDate(0, 1, 0)
	var cnt int64
	err := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("tenant_id = ? AND user_id = ? AND status <> ? AND deleted_at IS NULL", tenantID, userID, domain.BookingCancelled).
		Where("date >= ? AND date < ?", monthStart, nextMonth).
		Count(&cnt).Error
	return cnt, err
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason string, refund float64) error {
	return r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":              domain.BookingCancelled,
			"cancellation_reason": reason,
			"refund_amount":       refund,
		}).Error
}

func (r *BookingRepository) ListByUser(ctx context.Context, tenantID, userID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND deleted_at IS NULL", tenantID, userID).
		Order("date DESC, start_time DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByResourceDate(ctx context.Context, resourceID int64, date time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("resource_id = ? AND date = ? AND deleted_at IS NULL", resourceID, domain.DateOnly(date)).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListPendingByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND deleted_at IS NULL", tenantID, domain.BookingPending).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) ListByRecurrenceGroup(ctx context.Context, group string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("recurrence_group = ? AND deleted_at IS NULL", group).
		Order("date ASC").
		Find(&out).Error
	return out, err
}
