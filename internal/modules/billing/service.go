package billing

import (
	"context"
	"time"

	"bookhub/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	billing BillingRepository
	audit   AuditAppender
	logger  *zap.Logger
	now     func() time.Time
}

func NewService(billing BillingRepository, audit AuditAppender, logger *zap.Logger) *Service {
	return &Service{
		billing: billing,
		audit:   audit,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock overrides the time source for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreatePlan(ctx context.Context, req CreatePlanRequest) (*domain.Plan, error) {
	p := &domain.Plan{
		Name:         req.Name,
		Code:         req.Code,
		PriceMonthly: req.PriceMonthly,
		PriceYearly:  req.PriceYearly,
		MaxResources: req.MaxResources,
		MaxUsers:     req.MaxUsers,
	}
	if err := s.billing.CreatePlan(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.billing.ListPlans(ctx)
}

// Subscribe puts the tenant on a plan. Any previous active subscription is
// cancelled in the same transaction, and an invoice for the first period is
// issued immediately.
func (s *Service) Subscribe(ctx context.Context, tenantID, actorID int64, req SubscribeRequest) (*domain.Subscription, *domain.Invoice, error) {
	plan, err := s.billing.GetPlan(ctx, req.PlanID)
	if err != nil {
		return nil, nil, ErrPlanNotFound
	}

	period := domain.BillingPeriod(req.Period)
	now := s.now()
	expires := now.AddDate(0, 1, 0)
	if period == domain.PeriodYearly {
		expires = now.AddDate(1, 0, 0)
	}

	sub := &domain.Subscription{
		TenantID:  tenantID,
		PlanID:    plan.ID,
		Period:    period,
		Status:    domain.SubscriptionActive,
		StartsAt:  now,
		ExpiresAt: expires,
	}
	inv := &domain.Invoice{
		Number:   uuid.NewString(),
		TenantID: tenantID,
		Amount:   plan.Price(period),
		Status:   domain.InvoiceIssued,
		IssuedAt: now,
	}
	if err := s.billing.Subscribe(ctx, sub, inv); err != nil {
		return nil, nil, err
	}

	s.appendAudit(ctx, tenantID, actorID, "subscription.created", sub.ID, map[string]any{
		"plan_id": plan.ID,
		"period":  string(period),
	})
	return sub, inv, nil
}

// ActiveSubscription returns the tenant's current subscription. Lapsed
// subscriptions are expired on read; there is no background sweep.
func (s *Service) ActiveSubscription(ctx context.Context, tenantID int64) (*domain.Subscription, error) {
	if err := s.expireOverdue(ctx); err != nil {
		return nil, err
	}

	sub, err := s.billing.ActiveSubscription(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoSubscription
	}
	return sub, nil
}

func (s *Service) CancelSubscription(ctx context.Context, tenantID, actorID, id int64) error {
	n, err := s.billing.CancelSubscription(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.appendAudit(ctx, tenantID, actorID, "subscription.cancelled", id, nil)
	return nil
}

func (s *Service) expireOverdue(ctx context.Context) error {
	n, err := s.billing.ExpireOverdue(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Info("expired overdue subscriptions", zap.Int64("count", n))
	}
	return nil
}

func (s *Service) ListInvoices(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Invoice, error) {
	return s.billing.ListInvoices(ctx, tenantID, limit, offset)
}

func (s *Service) MarkInvoicePaid(ctx context.Context, tenantID, actorID, id int64) error {
	n, err := s.billing.MarkInvoicePaid(ctx, tenantID, id, s.now())
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.appendAudit(ctx, tenantID, actorID, "invoice.paid", id, nil)
	return nil
}

func (s *Service) appendAudit(ctx context.Context, tenantID, actorID int64, action string, entityID int64, detail map[string]any) {
	if s.audit == nil {
		return
	}
	err := s.audit.Append(ctx, &domain.AuditLog{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   action,
		Entity:   "billing",
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("audit append failed", zap.Error(err))
	}
}
