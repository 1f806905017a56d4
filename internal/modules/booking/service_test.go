package booking

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain"
	"bookhub/internal/modules/availability"
	"bookhub/internal/modules/policy"
	"bookhub/internal/modules/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateAtomic(ctx context.Context, b *domain.Booking, requiredApprovals int) error {
	args := m.Called(ctx, b, requiredApprovals)
	if b != nil && args.Error(0) == nil {
		b.ID = 999
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountForUserInMonth(ctx context.Context, tenantID, userID int64, monthStart time.Time) (int64, error) {
	args := m.Called(ctx, tenantID, userID, monthStart)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, id int64, reason string, refund float64) error {
	args := m.Called(ctx, id, reason, refund)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, tenantID, userID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, tenantID, userID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListPendingByTenant(ctx context.Context, tenantID int64, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByRecurrenceGroup(ctx context.Context, group string) ([]domain.Booking, error) {
	args := m.Called(ctx, group)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockResourceProvider struct {
	mock.Mock
}

func (m *MockResourceProvider) GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

type MockUserProvider struct {
	mock.Mock
}

func (m *MockUserProvider) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, res *domain.Resource, date time.Time, start, end string, excludeID int64) (availability.Conflict, error) {
	args := m.Called(ctx, res, date, start, end, excludeID)
	return args.Get(0).(availability.Conflict), args.Error(1)
}

type MockRuleEvaluator struct {
	mock.Mock
}

func (m *MockRuleEvaluator) Evaluate(ctx context.Context, tenantID int64, in rules.Input) (rules.Outcome, error) {
	args := m.Called(ctx, tenantID, in)
	return args.Get(0).(rules.Outcome), args.Error(1)
}

type MockGate struct {
	mock.Mock
}

func (m *MockGate) CanCancel(ctx context.Context, b *domain.Booking) (bool, *domain.CancellationPolicy, error) {
	args := m.Called(ctx, b)
	var p *domain.CancellationPolicy
	if args.Get(1) != nil {
		p = args.Get(1).(*domain.CancellationPolicy)
	}
	return args.Bool(0), p, args.Error(2)
}

type MockPromoter struct {
	mock.Mock
}

func (m *MockPromoter) CheckAndPromote(ctx context.Context, tenantID, resourceID int64, date time.Time, start, end string) (*domain.Booking, error) {
	args := m.Called(ctx, tenantID, resourceID, date, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type deps struct {
	bookings  *MockBookingRepository
	resources *MockResourceProvider
	users     *MockUserProvider
	checker   *MockChecker
	rules     *MockRuleEvaluator
	gate      *MockGate
	promoter  *MockPromoter
}

func newTestService() (*Service, *deps) {
	d := &deps{
		bookings:  new(MockBookingRepository),
		resources: new(MockResourceProvider),
		users:     new(MockUserProvider),
		checker:   new(MockChecker),
		rules:     new(MockRuleEvaluator),
		gate:      new(MockGate),
		promoter:  new(MockPromoter),
	}
	svc := NewService(d.bookings, d.resources, d.users, d.checker, d.rules, d.gate, d.promoter, nil, nil, zap.NewNop())
	return svc, d
}

func testRoom() *domain.Resource {
	return &domain.Resource{
		ID:           5,
		TenantID:     1,
		Name:         "Meeting Room A",
		Category:     domain.CategoryRoom,
		Capacity:     8,
		PricePerHour: 25,
		Status:       domain.ResourceAvailable,
		OpensAt:      "08:00",
		ClosesAt:     "20:00",
	}
}

func memberWithQuota(quota int) *domain.User {
	return &domain.User{
		ID:           2,
		TenantID:     1,
		Email:        "member@acme.test",
		Role:         domain.RoleMember,
		MonthlyQuota: &quota,
	}
}

func createReq() CreateBookingRequest {
	return CreateBookingRequest{
		ResourceID: 5,
		Date:       "2025-11-05",
		StartTime:  "10:00",
		EndTime:    "12:00",
	}
}

func TestCreate_Success(t *testing.T) {
	svc, d := newTestService()

	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(0), nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(testRoom(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictNone, nil)
	d.rules.On("Evaluate", mock.Anything, int64(1), mock.Anything).Return(rules.Outcome{}, nil)
	d.bookings.On("CreateAtomic", mock.Anything, mock.Anything, 0).Return(nil)

	b, err := svc.Create(context.Background(), 1, 2, "member", createReq())

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 2.0, b.DurationHours)
	assert.Equal(t, 50.0, b.TotalPrice)
}

func TestCreate_OverlapRejected(t *testing.T) {
	svc, d := newTestService()

	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(0), nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(testRoom(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictOverlap, nil)

	_, err := svc.Create(context.Background(), 1, 2, "member", createReq())

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, availability.ConflictOverlap, conflict.Reason)
	d.bookings.AssertNotCalled(t, "CreateAtomic")
}

func TestCreate_InvalidSlot(t *testing.T) {
	svc, _ := newTestService()

	req := createReq()
	req.StartTime = "12:00"
	req.EndTime = "10:00"

	_, err := svc.Create(context.Background(), 1, 2, "member", req)
	assert.ErrorIs(t, err, ErrValidation)

	req = createReq()
	req.Date = "05-11-2025"
	_, err = svc.Create(context.Background(), 1, 2, "member", req)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_QuotaExceeded(t *testing.T) {
	svc, d := newTestService()

	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(5), nil)

	_, err := svc.Create(context.Background(), 1, 2, "member", createReq())

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	d.resources.AssertNotCalled(t, "GetByID")
}

func TestCreate_QuotaFreedByCancellation(t *testing.T) {
	svc, d := newTestService()

	// Four non-cancelled bookings out of five: a cancelled fifth does not
	// count, so the request passes.
	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(4), nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(testRoom(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictNone, nil)
	d.rules.On("Evaluate", mock.Anything, int64(1), mock.Anything).Return(rules.Outcome{}, nil)
	d.bookings.On("CreateAtomic", mock.Anything, mock.Anything, 0).Return(nil)

	_, err := svc.Create(context.Background(), 1, 2, "member", createReq())
	assert.NoError(t, err)
}

func TestCreate_UnlimitedQuota(t *testing.T) {
	svc, d := newTestService()

	manager := &domain.User{ID: 2, TenantID: 1, Role: domain.RoleManager}
	d.users.On("GetByID", mock.Anything, int64(2)).Return(manager, nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(testRoom(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictNone, nil)
	d.rules.On("Evaluate", mock.Anything, int64(1), mock.Anything).Return(rules.Outcome{}, nil)
	d.bookings.On("CreateAtomic", mock.Anything, mock.Anything, 0).Return(nil)

	_, err := svc.Create(context.Background(), 1, 2, "manager", createReq())

	assert.NoError(t, err)
	d.bookings.AssertNotCalled(t, "CountForUserInMonth")
}

func TestCreate_RuleReject(t *testing.T) {
	svc, d := newTestService()

	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(0), nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(testRoom(), nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictNone, nil)
	d.rules.On("Evaluate", mock.Anything, int64(1), mock.Anything).Return(rules.Outcome{Reject: true, RejectedBy: "no marathon bookings"}, nil)

	_, err := svc.Create(context.Background(), 1, 2, "member", createReq())

	var ruleErr *RuleRejectionError
	assert.ErrorAs(t, err, &ruleErr)
	assert.Equal(t, "no marathon bookings", ruleErr.Rule)
}

func TestCreate_ApprovalsTakeMax(t *testing.T) {
	svc, d := newTestService()

	room := testRoom()
	room.RequiredApprovals = 1

	d.users.On("GetByID", mock.Anything, int64(2)).Return(memberWithQuota(5), nil)
	d.bookings.On("CountForUserInMonth", mock.Anything, int64(1), int64(2), mock.Anything).Return(int64(0), nil)
	d.resources.On("GetByID", mock.Anything, int64(1), int64(5)).Return(room, nil)
	d.checker.On("Check", mock.Anything, mock.Anything, mock.Anything, "10:00", "12:00", int64(0)).Return(availability.ConflictNone, nil)
	d.rules.On("Evaluate", mock.Anything, int64(1), mock.Anything).Return(rules.Outcome{RequiredApprovals: 3}, nil)
	d.bookings.On("CreateAtomic", mock.Anything, mock.Anything, 3).Return(nil)

	_, err := svc.Create(context.Background(), 1, 2, "member", createReq())

	assert.NoError(t, err)
	d.bookings.AssertCalled(t, "CreateAtomic", mock.Anything, mock.Anything, 3)
}

func TestCancel_OwnerInsideWindow(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{
		ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
		Date:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "12:00",
		TotalPrice: 50, Status: domain.BookingApproved,
	}
	cancelled := *b
	cancelled.Status = domain.BookingCancelled

	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil).Once()
	d.gate.On("CanCancel", mock.Anything, b).Return(true, &domain.CancellationPolicy{
		PenaltyType:      domain.PenaltyPercentage,
		RefundPercentage: 80,
	}, nil)
	d.bookings.On("Cancel", mock.Anything, int64(7), "plans changed", 40.0).Return(nil)
	d.promoter.On("CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00").Return(nil, nil)
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(&cancelled, nil).Once()

	got, err := svc.Cancel(context.Background(), 1, 7, 2, "member", "plans changed")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	d.promoter.AssertCalled(t, "CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00")
}

// The refund recorded on cancellation must be exactly what the policy
// package computes for the same inputs, for every penalty type.
func TestCancel_RefundMatchesPolicyMath(t *testing.T) {
	cases := []struct {
		name   string
		policy *domain.CancellationPolicy
		refund float64
	}{
		{"percentage", &domain.CancellationPolicy{PenaltyType: domain.PenaltyPercentage, RefundPercentage: 80}, 40.0},
		{"fixed", &domain.CancellationPolicy{PenaltyType: domain.PenaltyFixed, PenaltyAmount: 30}, 20.0},
		{"harsh fixed clamps to zero", &domain.CancellationPolicy{PenaltyType: domain.PenaltyFixed, PenaltyAmount: 500}, 0.0},
		{"none", &domain.CancellationPolicy{PenaltyType: domain.PenaltyNone}, 50.0},
		{"no policy", nil, 50.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, d := newTestService()

			b := &domain.Booking{
				ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
				Date:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00", EndTime: "12:00",
				TotalPrice: 50, Status: domain.BookingApproved,
			}
			d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
			d.gate.On("CanCancel", mock.Anything, b).Return(true, tc.policy, nil)
			d.bookings.On("Cancel", mock.Anything, int64(7), "", tc.refund).Return(nil)
			d.promoter.On("CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00").Return(nil, nil)

			_, err := svc.Cancel(context.Background(), 1, 7, 2, "member", "")

			assert.NoError(t, err)
			assert.Equal(t, tc.refund, policy.CalculateRefund(tc.policy, b.TotalPrice, true))
			d.bookings.AssertCalled(t, "Cancel", mock.Anything, int64(7), "", tc.refund)
		})
	}
}

func TestCancel_WindowPassedRefused(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{
		ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
		TotalPrice: 50, Status: domain.BookingApproved,
	}
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	d.gate.On("CanCancel", mock.Anything, b).Return(false, &domain.CancellationPolicy{HoursBefore: 24}, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, 2, "member", "too late")

	assert.ErrorIs(t, err, ErrCancellationWindow)
	d.bookings.AssertNotCalled(t, "Cancel")
}

func TestCancel_NotOwner(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{ID: 7, TenantID: 1, UserID: 2, Status: domain.BookingApproved}
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, 3, "member", "")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCancel_ManagerMayCancelOthers(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{
		ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
		Date:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "12:00",
		TotalPrice: 50, Status: domain.BookingPending,
	}
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	d.gate.On("CanCancel", mock.Anything, b).Return(true, nil, nil)
	d.bookings.On("Cancel", mock.Anything, int64(7), "double booked", 50.0).Return(nil)
	d.promoter.On("CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00").Return(nil, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, 3, "manager", "double booked")

	assert.NoError(t, err)
}

func TestCancel_TerminalStatus(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{ID: 7, TenantID: 1, UserID: 2, Status: domain.BookingCancelled}
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, 2, "member", "")

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancel_PromotionFailureDoesNotSurface(t *testing.T) {
	svc, d := newTestService()

	b := &domain.Booking{
		ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
		Date:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "12:00",
		TotalPrice: 50, Status: domain.BookingApproved,
	}
	d.bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	d.gate.On("CanCancel", mock.Anything, b).Return(true, nil, nil)
	d.bookings.On("Cancel", mock.Anything, int64(7), "", 50.0).Return(nil)
	d.promoter.On("CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00").Return(nil, assert.AnError)

	_, err := svc.Cancel(context.Background(), 1, 7, 2, "member", "")

	assert.NoError(t, err)
}
