package domain

import "time"

type UserRole string

const (
	RoleMember  UserRole = "member"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id"`
	TenantID     int64    `json:"tenant_id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	Role         UserRole `json:"role"`

	// MonthlyQuota caps non-cancelled bookings per calendar month.
	// nil means unlimited.
	MonthlyQuota *int `json:"monthly_quota,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

type Group struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

type GroupMember struct {
	ID      int64 `json:"id"`
	GroupID int64 `json:"group_id"`
	UserID  int64 `json:"user_id"`
}

// Permission is a direct or group grant; exactly one of UserID/GroupID is
// set.
type Permission struct {
	ID        int64     `json:"id"`
	TenantID  int64     `json:"tenant_id"`
	UserID    *int64    `json:"user_id,omitempty"`
	GroupID   *int64    `json:"group_id,omitempty"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"created_at"`
}
