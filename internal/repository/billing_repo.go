package repository

import (
	"context"
	"errors"
	"time"

	"bookhub/internal/domain"

	"gorm.io/gorm"
)

type BillingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) CreatePlan(ctx context.Context, p *domain.Plan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *BillingRepository) GetPlan(ctx context.Context, id int64) (*domain.Plan, error) {
	var p domain.Plan
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BillingRepository) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	var out []domain.Plan
	err := r.db.WithContext(ctx).Order("price_monthly ASC").Find(&out).Error
	return out, err
}

// Subscribe cancels any active subscription for the tenant, creates the new
// one and issues its invoice in a single transaction.
func (r *BillingRepository) Subscribe(ctx context.Context, sub *domain.Subscription, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&domain.Subscription{}).
			Where("tenant_id = ? AND status = ?", sub.TenantID, domain.SubscriptionActive).
			Update("status", domain.SubscriptionCancelled).Error
		if err != nil {
			return err
		}
		if err := tx.Create(sub).Error; err != nil {
			return err
		}
		inv.SubscriptionID = sub.ID
		return tx.Create(inv).Error
	})
}

func (r *BillingRepository) ActiveSubscription(ctx context.Context, tenantID int64) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("tenant_id = ? AND status = ?", tenantID, domain.SubscriptionActive).
		Order("created_at DESC").
		First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *BillingRepository) CancelSubscription(ctx context.Context, tenantID, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, domain.SubscriptionActive).
		Update("status", domain.SubscriptionCancelled)
	return res.RowsAffected, res.Error
}

// ExpireOverdue flips active subscriptions whose period has lapsed.
func (r *BillingRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("status = ? AND expires_at < ?", domain.SubscriptionActive, now).
		Update("status", domain.SubscriptionExpired)
	return res.RowsAffected, res.Error
}

func (r *BillingRepository) ListInvoices(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Invoice, error) {
	var out []domain.Invoice
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("issued_at DESC").
		Limit(limit).Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BillingRepository) MarkInvoicePaid(ctx context.Context, tenantID, id int64, paidAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Invoice{}).
		Where("id = ? AND tenant_id = ? AND status = ?", id, tenantID, domain.InvoiceIssued).
		Updates(map[string]any{"status": domain.InvoicePaid, "paid_at": paidAt})
	return res.RowsAffected, res.Error
}
