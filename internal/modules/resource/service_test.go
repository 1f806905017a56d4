package resource

import (
	"context"
	"testing"
	"time"

	"bookhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockResourceRepository struct {
	mock.Mock
}

func (m *MockResourceRepository) Create(ctx context.Context, res *domain.Resource) error {
	args := m.Called(ctx, res)
	if res != nil && args.Error(0) == nil {
		res.ID = 5
	}
	return args.Error(0)
}

func (m *MockResourceRepository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) Update(ctx context.Context, res *domain.Resource) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockResourceRepository) SoftDelete(ctx context.Context, tenantID, id int64) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockResourceRepository) List(ctx context.Context, tenantID int64, category string, limit, offset int) ([]domain.Resource, error) {
	args := m.Called(ctx, tenantID, category, limit, offset)
	return args.Get(0).([]domain.Resource), args.Error(1)
}

func (m *MockResourceRepository) AddMaintenance(ctx context.Context, sched *domain.MaintenanceSchedule) error {
	args := m.Called(ctx, sched)
	return args.Error(0)
}

func (m *MockResourceRepository) ListMaintenance(ctx context.Context, resourceID int64) ([]domain.MaintenanceSchedule, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.MaintenanceSchedule), args.Error(1)
}

func (m *MockResourceRepository) DeleteMaintenance(ctx context.Context, resourceID, id int64) error {
	args := m.Called(ctx, resourceID, id)
	return args.Error(0)
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), 1, CreateResourceRequest{
		Name:         "Meeting Room A",
		Category:     "room",
		Capacity:     8,
		PricePerHour: 25,
		OpensAt:      "08:00",
		ClosesAt:     "20:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.ResourceAvailable, res.Status)
	assert.Equal(t, int64(1), res.TenantID)
}

func TestCreate_RejectsBadHours(t *testing.T) {
	svc := NewService(new(MockResourceRepository))

	_, err := svc.Create(context.Background(), 1, CreateResourceRequest{
		Name:     "Room",
		Category: "room",
		OpensAt:  "20:00",
		ClosesAt: "08:00",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), 1, CreateResourceRequest{
		Name:     "Room",
		Category: "room",
		OpensAt:  "08:00",
		ClosesAt: "",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestScheduleMaintenance(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&domain.Resource{ID: 5, TenantID: 1}, nil)
	repo.On("AddMaintenance", mock.Anything, mock.Anything).Return(nil)

	start := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)

	m, err := svc.ScheduleMaintenance(context.Background(), 1, 5, start, end, "HVAC service")

	assert.NoError(t, err)
	assert.Equal(t, start, m.StartDate)
	assert.Equal(t, end, m.EndDate)
}

func TestScheduleMaintenance_SingleDayAllowed(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&domain.Resource{ID: 5, TenantID: 1}, nil)
	repo.On("AddMaintenance", mock.Anything, mock.Anything).Return(nil)

	day := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.ScheduleMaintenance(context.Background(), 1, 5, day, day, "")

	assert.NoError(t, err)
}

func TestScheduleMaintenance_EndBeforeStart(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&domain.Resource{ID: 5, TenantID: 1}, nil)

	start := time.Date(2025, 11, 12, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.ScheduleMaintenance(context.Background(), 1, 5, start, end, "")

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "AddMaintenance")
}

func TestUpdate_PatchesFields(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	existing := &domain.Resource{
		ID: 5, TenantID: 1, Name: "Room", Status: domain.ResourceAvailable,
		OpensAt: "08:00", ClosesAt: "20:00", PricePerHour: 25,
	}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(existing, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	price := 30.0
	status := "maintenance"
	res, err := svc.Update(context.Background(), 1, 5, UpdateResourceRequest{
		PricePerHour: &price,
		Status:       &status,
	})

	assert.NoError(t, err)
	assert.Equal(t, 30.0, res.PricePerHour)
	assert.Equal(t, domain.ResourceMaintenance, res.Status)
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockResourceRepository)
	svc := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&domain.Resource{ID: 5, TenantID: 1}, nil)

	status := "broken"
	_, err := svc.Update(context.Background(), 1, 5, UpdateResourceRequest{Status: &status})

	assert.ErrorIs(t, err, ErrValidation)
}
