package domain

import "time"

type BillingPeriod string

const (
	PeriodMonthly BillingPeriod = "monthly"
	PeriodYearly  BillingPeriod = "yearly"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

type Plan struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required"`
	Code         string    `json:"code" validate:"required"`
	PriceMonthly float64   `json:"price_monthly" validate:"gte=0"`
	PriceYearly  float64   `json:"price_yearly" validate:"gte=0"`
	MaxResources int       `json:"max_resources"`
	MaxUsers     int       `json:"max_users"`
	CreatedAt    time.Time `json:"created_at"`
}

// Price returns the charge for one billing period.
func (p *Plan) Price(period BillingPeriod) float64 {
	if period == PeriodYearly {
		return p.PriceYearly
	}
	return p.PriceMonthly
}

type Subscription struct {
	ID        int64              `json:"id"`
	TenantID  int64              `json:"tenant_id"`
	PlanID    int64              `json:"plan_id"`
	Period    BillingPeriod      `json:"period"`
	Status    SubscriptionStatus `json:"status"`
	StartsAt  time.Time          `json:"starts_at"`
	ExpiresAt time.Time          `json:"expires_at"`
	CreatedAt time.Time          `json:"created_at"`

	Plan *Plan `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
}

type InvoiceStatus string

const (
	InvoiceIssued InvoiceStatus = "issued"
	InvoicePaid   InvoiceStatus = "paid"
	InvoiceVoid   InvoiceStatus = "void"
)

type Invoice struct {
	ID             int64         `json:"id"`
	Number         string        `json:"number"`
	TenantID       int64         `json:"tenant_id"`
	SubscriptionID int64         `json:"subscription_id"`
	Amount         float64       `json:"amount"`
	Status         InvoiceStatus `json:"status"`
	IssuedAt       time.Time     `json:"issued_at"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
}
