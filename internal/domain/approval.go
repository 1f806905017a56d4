package domain

import "time"

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// ApprovalLevel is one required sign-off step for a booking. Levels are
// independent; there is no ordering between them.
type ApprovalLevel struct {
	ID         int64          `json:"id"`
	BookingID  int64          `json:"booking_id"`
	Level      int            `json:"level"`
	ApproverID *int64         `json:"approver_id,omitempty"`
	Status     ApprovalStatus `json:"status"`
	Comment    string         `json:"comment,omitempty"`
	DecidedAt  *time.Time     `json:"decided_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
