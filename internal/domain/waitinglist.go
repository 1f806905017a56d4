package domain

import "time"

type WaitingStatus string

const (
	WaitingActive    WaitingStatus = "active"
	WaitingPromoted  WaitingStatus = "promoted"
	WaitingCancelled WaitingStatus = "cancelled"
)

// WaitingListEntry queues an unmet booking request for an exact slot.
type WaitingListEntry struct {
	ID         int64         `json:"id"`
	TenantID   int64         `json:"tenant_id"`
	ResourceID int64         `json:"resource_id" validate:"required"`
	UserID     int64         `json:"user_id" validate:"required"`
	Date       time.Time     `json:"date" validate:"required"`
	StartTime  string        `json:"start_time" validate:"required"`
	EndTime    string        `json:"end_time" validate:"required"`
	Priority   int           `json:"priority"`
	Status     WaitingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
