package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransitionTo enforces the booking lifecycle: pending may move to any
// decision, approved may still be cancelled, rejected and cancelled are
// terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingRejected || next == BookingCancelled
	case BookingApproved:
		return next == BookingCancelled
	default:
		return false
	}
}

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

type Booking struct {
	ID            int64         `json:"id"`
	TenantID      int64         `json:"tenant_id"`
	ResourceID    int64         `json:"resource_id" validate:"required"`
	UserID        int64         `json:"user_id" validate:"required"`
	Date          time.Time     `json:"date" validate:"required"`
	StartTime     string        `json:"start_time" validate:"required"`
	EndTime       string        `json:"end_time" validate:"required"`
	DurationHours float64       `json:"duration_hours"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`

	IsRecurring     bool       `json:"is_recurring,omitempty"`
	Frequency       *Frequency `json:"frequency,omitempty"`
	RecursUntil     *time.Time `json:"recurs_until,omitempty"`
	RecurrenceGroup string     `json:"recurrence_group,omitempty"`
	ParentBookingID *int64     `json:"parent_booking_id,omitempty"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	RefundAmount       *float64   `json:"refund_amount,omitempty"`
	ExternalCalendarID string     `json:"external_calendar_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	DeletedAt          *time.Time `json:"-"`

	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Resource *Resource `json:"resource,omitempty" gorm:"foreignKey:ResourceID"`
}

// StartsAt combines the booking date with its start time-of-day.
func (b *Booking) StartsAt() time.Time {
	m, err := ClockMinutes(b.StartTime)
	if err != nil {
		return b.Date
	}
	return time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), m/60, m%60, 0, 0, time.UTC)
}
