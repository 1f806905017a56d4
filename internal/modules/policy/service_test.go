package policy

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPolicyRepository struct {
	mock.Mock
}

func (m *MockPolicyRepository) GetForResource(ctx context.Context, tenantID, resourceID int64) (*domain.CancellationPolicy, error) {
	args := m.Called(ctx, tenantID, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CancellationPolicy), args.Error(1)
}

func (m *MockPolicyRepository) Create(ctx context.Context, p *domain.CancellationPolicy) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPolicyRepository) List(ctx context.Context, tenantID int64) ([]domain.CancellationPolicy, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]domain.CancellationPolicy), args.Error(1)
}

func (m *MockPolicyRepository) Delete(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func bookingStartingAt(start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:         7,
		TenantID:   1,
		ResourceID: 2,
		Date:       time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:  start.Format("15:04"),
		EndTime:    "23:00",
		TotalPrice: 100,
	}
}

func TestCanCancel_InsideWindow(t *testing.T) {
	repo := new(MockPolicyRepository)
	now := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo).WithClock(func() time.Time { return now })

	repo.On("GetForResource", mock.Anything, int64(1), int64(2)).Return(&domain.CancellationPolicy{
		HoursBefore: 24,
		PenaltyType: domain.PenaltyNone,
	}, nil)

	// Booking starts in 48h: cancellable.
	ok, p, err := svc.CanCancel(context.Background(), bookingStartingAt(now.Add(48*time.Hour)))
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, p)
}

func TestCanCancel_WindowPassed(t *testing.T) {
	repo := new(MockPolicyRepository)
	now := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo).WithClock(func() time.Time { return now })

	repo.On("GetForResource", mock.Anything, int64(1), int64(2)).Return(&domain.CancellationPolicy{
		HoursBefore: 24,
		PenaltyType: domain.PenaltyNone,
	}, nil)

	// Booking starts in 2h: the 24h window has passed.
	ok, _, err := svc.CanCancel(context.Background(), bookingStartingAt(now.Add(2*time.Hour)))
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCanCancel_NoPolicy(t *testing.T) {
	repo := new(MockPolicyRepository)
	now := time.Date(2025, 11, 5, 10, 0, 0, 0, time.UTC)
	svc := NewService(repo).WithClock(func() time.Time { return now })

	repo.On("GetForResource", mock.Anything, int64(1), int64(2)).Return(nil, nil)

	ok, p, err := svc.CanCancel(context.Background(), bookingStartingAt(now.Add(time.Hour)))
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, p)
}

func TestCalculateRefund(t *testing.T) {
	percentage := &domain.CancellationPolicy{PenaltyType: domain.PenaltyPercentage, RefundPercentage: 80}
	fixed := &domain.CancellationPolicy{PenaltyType: domain.PenaltyFixed, PenaltyAmount: 30}
	harshFixed := &domain.CancellationPolicy{PenaltyType: domain.PenaltyFixed, PenaltyAmount: 500}
	none := &domain.CancellationPolicy{PenaltyType: domain.PenaltyNone}

	assert.Equal(t, 80.0, CalculateRefund(percentage, 100, true))
	assert.Equal(t, 70.0, CalculateRefund(fixed, 100, true))
	assert.Equal(t, 100.0, CalculateRefund(none, 100, true))
	assert.Equal(t, 100.0, CalculateRefund(nil, 100, true))

	// Never below zero, never above the total.
	assert.Equal(t, 0.0, CalculateRefund(harshFixed, 100, true))
	over := &domain.CancellationPolicy{PenaltyType: domain.PenaltyPercentage, RefundPercentage: 100}
	assert.Equal(t, 100.0, CalculateRefund(over, 100, true))

	// Blocked cancellations refund nothing regardless of policy.
	assert.Equal(t, 0.0, CalculateRefund(percentage, 100, false))
	assert.Equal(t, 0.0, CalculateRefund(nil, 100, false))
}

func TestCalculateRefund_Deterministic(t *testing.T) {
	p := &domain.CancellationPolicy{PenaltyType: domain.PenaltyPercentage, RefundPercentage: 50}

	first := CalculateRefund(p, 80, true)
	second := CalculateRefund(p, 80, true)

	assert.Equal(t, first, second)
	assert.Equal(t, 40.0, first)
}

func TestCreate_Validation(t *testing.T) {
	repo := new(MockPolicyRepository)
	svc := NewService(repo)

	err := svc.Create(context.Background(), 9, &domain.CancellationPolicy{
		TenantID:    1,
		HoursBefore: -1,
		PenaltyType: domain.PenaltyNone,
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(context.Background(), 9, &domain.CancellationPolicy{
		TenantID:         1,
		PenaltyType:      domain.PenaltyPercentage,
		RefundPercentage: 120,
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.Create(context.Background(), 9, &domain.CancellationPolicy{
		TenantID:    1,
		PenaltyType: "weird",
	})
	assert.ErrorIs(t, err, ErrValidation)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	err = svc.Create(context.Background(), 9, &domain.CancellationPolicy{
		TenantID:         1,
		HoursBefore:      24,
		PenaltyType:      domain.PenaltyPercentage,
		RefundPercentage: 80,
	})
	assert.NoError(t, err)
}
