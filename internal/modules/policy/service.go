package policy

import (
	"context"
	"time"

	"bookhub/internal/domain"

	"go.uber.org/zap"
)

type Service struct {
	policies PolicyRepository
	audit    AuditAppender
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(policies PolicyRepository) *Service {
	return &Service{policies: policies, logger: zap.NewNop(), now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithAudit enables audit-log entries for policy changes.
func (s *Service) WithAudit(audit AuditAppender, logger *zap.Logger) *Service {
	s.audit = audit
	s.logger = logger
	return s
}

// CanCancel reports whether the booking may still be cancelled under the
// effective policy: the hours remaining until the booking starts must be at
// least policy.HoursBefore. No policy means always cancellable.
func (s *Service) CanCancel(ctx context.Context, b *domain.Booking) (bool, *domain.CancellationPolicy, error) {
	p, err := s.policies.GetForResource(ctx, b.TenantID, b.ResourceID)
	if err != nil {
		return false, nil, err
	}
	if p == nil {
		return true, nil, nil
	}

	hoursLeft := b.StartsAt().Sub(s.now()).Hours()
	return hoursLeft >= float64(p.HoursBefore), p, nil
}

// CalculateRefund computes the refund for a cancellation. The total is the
// booking price fixed at creation (resource price x duration). A booking
// that may not be cancelled refunds 0; this is a value, not an error.
// The result is always within [0, total].
func CalculateRefund(p *domain.CancellationPolicy, total float64, cancellable bool) float64 {
	if !cancellable {
		return 0
	}
	if p == nil {
		return total
	}

	switch p.PenaltyType {
	case domain.PenaltyPercentage:
		refund := total * p.RefundPercentage / 100
		if refund < 0 {
			return 0
		}
		if refund > total {
			return total
		}
		return refund
	case domain.PenaltyFixed:
		refund := total - p.PenaltyAmount
		if refund < 0 {
			return 0
		}
		return refund
	default:
		return total
	}
}

func (s *Service) Create(ctx context.Context, actorID int64, p *domain.CancellationPolicy) error {
	if p.HoursBefore < 0 || p.RefundPercentage < 0 || p.RefundPercentage > 100 {
		return ErrValidation
	}
	switch p.PenaltyType {
	case domain.PenaltyNone, domain.PenaltyPercentage, domain.PenaltyFixed:
	default:
		return ErrValidation
	}
	if err := s.policies.Create(ctx, p); err != nil {
		return err
	}

	s.appendAudit(ctx, p.TenantID, actorID, "policy.created", p.ID, map[string]any{
		"resource_id":  p.ResourceID,
		"hours_before": p.HoursBefore,
		"penalty_type": string(p.PenaltyType),
	})
	return nil
}

func (s *Service) List(ctx context.Context, tenantID int64) ([]domain.CancellationPolicy, error) {
	return s.policies.List(ctx, tenantID)
}

func (s *Service) Delete(ctx context.Context, tenantID, actorID, id int64) error {
	if err := s.policies.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.appendAudit(ctx, tenantID, actorID, "policy.deleted", id, nil)
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
		Entity:   "policy",
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("audit append failed", zap.String("action", action), zap.Error(err))
	}
}
