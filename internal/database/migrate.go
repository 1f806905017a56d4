package database

import (
	"bookhub/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate keeps the local/dev schema in sync with the domain models.
// Production deployments run managed migrations instead.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&domain.Tenant{},
		&domain.User{},
		&domain.Group{},
		&domain.GroupMember{},
		&domain.Permission{},
		&domain.Resource{},
		&domain.MaintenanceSchedule{},
		&domain.Booking{},
		&domain.ApprovalLevel{},
		&domain.WaitingListEntry{},
		&domain.CancellationPolicy{},
		&domain.BusinessRule{},
		&domain.Notification{},
		&domain.AuditLog{},
		&domain.Plan{},
		&domain.Subscription{},
		&domain.Invoice{},
	)
	if err != nil {
		return err
	}

	// Exact-duplicate backstop behind the in-transaction overlap re-check.
	// Partial so cancelled/rejected and soft-deleted rows free the slot.
	return db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON bookings (resource_id, date, start_time)
WHERE status IN ('pending', 'approved') AND deleted_at IS NULL`).Error
}
