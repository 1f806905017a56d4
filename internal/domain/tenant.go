package domain

import (
	"time"

	"gorm.io/datatypes"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
)

type Tenant struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name" validate:"required"`
	Slug   string       `json:"slug" validate:"required"`
	Status TenantStatus `json:"status"`

	// Features toggles optional behaviour per tenant, e.g.
	// {"waiting_list": true, "recurring_bookings": true}.
	Features datatypes.JSONMap `json:"features,omitempty"`
	Settings datatypes.JSONMap `json:"settings,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// FeatureEnabled defaults to true for unknown flags so new features do not
// need a backfill.
func (t *Tenant) FeatureEnabled(name string) bool {
	if t.Features == nil {
		return true
	}
	v, ok := t.Features[name]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}
