package approval

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockApprovalRepository struct {
	mock.Mock
}

func (m *MockApprovalRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.ApprovalLevel, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.ApprovalLevel), args.Error(1)
}

func (m *MockApprovalRepository) GetLevel(ctx context.Context, bookingID int64, level int) (*domain.ApprovalLevel, error) {
	args := m.Called(ctx, bookingID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApprovalLevel), args.Error(1)
}

func (m *MockApprovalRepository) Decide(ctx context.Context, id, approverID int64, status domain.ApprovalStatus, comment string) error {
	args := m.Called(ctx, id, approverID, status, comment)
	return args.Error(0)
}

func (m *MockApprovalRepository) CountApproved(ctx context.Context, bookingID int64) (int64, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
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

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingApproved(ctx context.Context, userID, bookingID int64) error {
	args := m.Called(ctx, userID, bookingID)
	return args.Error(0)
}

func (m *MockNotifier) NotifyBookingRejected(ctx context.Context, userID, bookingID int64, comment string) error {
	args := m.Called(ctx, userID, bookingID, comment)
	return args.Error(0)
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID: 7, TenantID: 1, ResourceID: 5, UserID: 2,
		Date:      time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "12:00",
		Status: domain.BookingPending,
	}
}

func levels(statuses ...domain.ApprovalStatus) []domain.ApprovalLevel {
	out := make([]domain.ApprovalLevel, len(statuses))
	for i, s := range statuses {
		out[i] = domain.ApprovalLevel{ID: int64(i + 1), BookingID: 7, Level: i + 1, Status: s}
	}
	return out
}

func newApprovalService() (*Service, *MockApprovalRepository, *MockBookingStore, *MockPromoter, *MockNotifier) {
	approvals := new(MockApprovalRepository)
	bookings := new(MockBookingStore)
	promoter := new(MockPromoter)
	notifs := new(MockNotifier)
	svc := NewService(approvals, bookings, promoter, notifs, nil, zap.NewNop())
	return svc, approvals, bookings, promoter, notifs
}

func TestDecide_PartialApprovalKeepsPending(t *testing.T) {
	svc, approvals, bookings, _, notifs := newApprovalService()

	b := pendingBooking()
	bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	approvals.On("GetLevel", mock.Anything, int64(7), 1).Return(&domain.ApprovalLevel{ID: 1, BookingID: 7, Level: 1, Status: domain.ApprovalPending}, nil)
	approvals.On("Decide", mock.Anything, int64(1), int64(9), domain.ApprovalApproved, "looks fine").Return(nil)
	approvals.On("ListByBooking", mock.Anything, int64(7)).Return(levels(domain.ApprovalApproved, domain.ApprovalPending), nil)
	approvals.On("CountApproved", mock.Anything, int64(7)).Return(int64(1), nil)

	_, err := svc.Decide(context.Background(), 1, 9, 7, 1, true, "looks fine")

	assert.NoError(t, err)
	bookings.AssertNotCalled(t, "UpdateStatus")
	notifs.AssertNotCalled(t, "NotifyBookingApproved")
}

func TestDecide_LastApprovalApprovesBooking(t *testing.T) {
	svc, approvals, bookings, _, notifs := newApprovalService()

	b := pendingBooking()
	bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	approvals.On("GetLevel", mock.Anything, int64(7), 2).Return(&domain.ApprovalLevel{ID: 2, BookingID: 7, Level: 2, Status: domain.ApprovalPending}, nil)
	approvals.On("Decide", mock.Anything, int64(2), int64(9), domain.ApprovalApproved, "").Return(nil)
	approvals.On("ListByBooking", mock.Anything, int64(7)).Return(levels(domain.ApprovalApproved, domain.ApprovalApproved), nil)
	approvals.On("CountApproved", mock.Anything, int64(7)).Return(int64(2), nil)
	bookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingApproved).Return(nil)
	notifs.On("NotifyBookingApproved", mock.Anything, int64(2), int64(7)).Return(nil)

	_, err := svc.Decide(context.Background(), 1, 9, 7, 2, true, "")

	assert.NoError(t, err)
	bookings.AssertCalled(t, "UpdateStatus", mock.Anything, int64(7), domain.BookingApproved)
}

func TestDecide_RejectionRejectsAndPromotes(t *testing.T) {
	svc, approvals, bookings, promoter, notifs := newApprovalService()

	b := pendingBooking()
	bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)
	approvals.On("GetLevel", mock.Anything, int64(7), 1).Return(&domain.ApprovalLevel{ID: 1, BookingID: 7, Level: 1, Status: domain.ApprovalPending}, nil)
	approvals.On("Decide", mock.Anything, int64(1), int64(9), domain.ApprovalRejected, "not allowed").Return(nil)
	bookings.On("UpdateStatus", mock.Anything, int64(7), domain.BookingRejected).Return(nil)
	notifs.On("NotifyBookingRejected", mock.Anything, int64(2), int64(7), "not allowed").Return(nil)
	promoter.On("CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00").Return(nil, nil)

	_, err := svc.Decide(context.Background(), 1, 9, 7, 1, false, "not allowed")

	assert.NoError(t, err)
	bookings.AssertCalled(t, "UpdateStatus", mock.Anything, int64(7), domain.BookingRejected)
	promoter.AssertCalled(t, "CheckAndPromote", mock.Anything, int64(1), int64(5), b.Date, "10:00", "12:00")
	// The approved-count path never runs after a rejection.
	approvals.AssertNotCalled(t, "CountApproved")
}

func TestDecide_AlreadyDecided(t *testing.T) {
	svc, approvals, bookings, _, _ := newApprovalService()

	bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(pendingBooking(), nil)
	approvals.On("GetLevel", mock.Anything, int64(7), 1).Return(&domain.ApprovalLevel{ID: 1, BookingID: 7, Level: 1, Status: domain.ApprovalApproved}, nil)

	_, err := svc.Decide(context.Background(), 1, 9, 7, 1, true, "")

	assert.ErrorIs(t, err, ErrAlreadyDecided)
	approvals.AssertNotCalled(t, "Decide")
}

func TestDecide_BookingNotPending(t *testing.T) {
	svc, _, bookings, _, _ := newApprovalService()

	b := pendingBooking()
	b.Status = domain.BookingCancelled
	bookings.On("GetByID", mock.Anything, int64(1), int64(7)).Return(b, nil)

	_, err := svc.Decide(context.Background(), 1, 9, 7, 1, true, "")

	assert.ErrorIs(t, err, ErrBookingState)
}

func TestDecide_InvalidLevel(t *testing.T) {
	svc, _, _, _, _ := newApprovalService()

	_, err := svc.Decide(context.Background(), 1, 9, 7, 0, true, "")

	assert.ErrorIs(t, err, ErrValidation)
}
