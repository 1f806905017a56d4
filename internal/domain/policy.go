package domain

import "time"

type PenaltyType string

const (
	PenaltyNone       PenaltyType = "none"
	PenaltyPercentage PenaltyType = "percentage"
	PenaltyFixed      PenaltyType = "fixed"
)

// CancellationPolicy controls how late a booking may be cancelled and what
// part of the price is refunded. ResourceID nil means the tenant-wide
// default; a resource-specific policy wins over the default.
type CancellationPolicy struct {
	ID               int64       `json:"id"`
	TenantID         int64       `json:"tenant_id"`
	ResourceID       *int64      `json:"resource_id,omitempty"`
	HoursBefore      int         `json:"hours_before" validate:"gte=0"`
	PenaltyType      PenaltyType `json:"penalty_type"`
	PenaltyAmount    float64     `json:"penalty_amount" validate:"gte=0"`
	RefundPercentage float64     `json:"refund_percentage" validate:"gte=0,lte=100"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
