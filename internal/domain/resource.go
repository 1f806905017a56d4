package domain

import "time"

type ResourceCategory string

const (
	CategoryRoom      ResourceCategory = "room"
	CategoryEquipment ResourceCategory = "equipment"
	CategoryVehicle   ResourceCategory = "vehicle"
	CategoryService   ResourceCategory = "service"
)

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceBusy        ResourceStatus = "busy"
	ResourceMaintenance ResourceStatus = "maintenance"
)

type Resource struct {
	ID           int64            `json:"id"`
	TenantID     int64            `json:"tenant_id"`
	Name         string           `json:"name" validate:"required"`
	Description  string           `json:"description,omitempty"`
	Category     ResourceCategory `json:"category" validate:"required"`
	Capacity     int              `json:"capacity" validate:"gte=0"`
	PricePerHour float64          `json:"price_per_hour" validate:"gte=0"`
	Status       ResourceStatus   `json:"status"`

	// Opening hours as "HH:MM" time-of-day; bookings must fall inside
	// [OpensAt, ClosesAt).
	OpensAt  string `json:"opens_at"`
	ClosesAt string `json:"closes_at"`

	RequiredApprovals int        `json:"required_approvals"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"-"`

	Maintenance []MaintenanceSchedule `json:"maintenance,omitempty" gorm:"foreignKey:ResourceID"`
}

type MaintenanceSchedule struct {
	ID         int64     `json:"id"`
	ResourceID int64     `json:"resource_id"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Covers reports whether the window is active on the given date, bounds
// inclusive.
func (m *MaintenanceSchedule) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(m.StartDate)) && !d.After(DateOnly(m.EndDate))
}
