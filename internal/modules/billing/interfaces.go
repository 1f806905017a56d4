package billing

import (
	"context"
	"time"

	"bookhub/internal/domain"
)

type BillingRepository interface {
	CreatePlan(ctx context.Context, p *domain.Plan) error
	GetPlan(ctx context.Context, id int64) (*domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	Subscribe(ctx context.Context, sub *domain.Subscription, inv *domain.Invoice) error
	ActiveSubscription(ctx context.Context, tenantID int64) (*domain.Subscription, error)
	CancelSubscription(ctx context.Context, tenantID, id int64) (int64, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	ListInvoices(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Invoice, error)
	MarkInvoicePaid(ctx context.Context, tenantID, id int64, paidAt time.Time) (int64, error)
}

type AuditAppender interface {
	Append(ctx context.Context, entry *domain.AuditLog) error
}
