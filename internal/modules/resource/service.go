package resource

import (
	"context"
	"time"

	"bookhub/internal/domain"
)

type Service struct {
	resources ResourceRepository
}

func NewService(resources ResourceRepository) *Service {
	return &Service{resources: resources}
}

func (s *Service) Create(ctx context.Context, tenantID int64, req CreateResourceRequest) (*domain.Resource, error) {
	if err := validateHours(req.OpensAt, req.ClosesAt); err != nil {
		return nil, err
	}

	res := &domain.Resource{
		TenantID:          tenantID,
		Name:              req.Name,
		Description:       req.Description,
		Category:          domain.ResourceCategory(req.Category),
		Capacity:          req.Capacity,
		PricePerHour:      req.PricePerHour,
		Status:            domain.ResourceAvailable,
		OpensAt:           req.OpensAt,
		ClosesAt:          req.ClosesAt,
		RequiredApprovals: req.RequiredApprovals,
	}
	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) GetByID(ctx context.Context, tenantID, id int64) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return res, nil
}

func (s *Service) List(ctx context.Context, tenantID int64, category string, limit, offset int) ([]domain.Resource, error) {
	return s.resources.List(ctx, tenantID, category, limit, offset)
}

func (s *Service) Update(ctx context.Context, tenantID, id int64, req UpdateResourceRequest) (*domain.Resource, error) {
	res, err := s.resources.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		res.Name = *req.Name
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return nil, ErrValidation
		}
		res.Capacity = *req.Capacity
	}
	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrValidation
		}
		res.PricePerHour = *req.PricePerHour
	}
	if req.Status != nil {
		switch domain.ResourceStatus(*req.Status) {
		case domain.ResourceAvailable, domain.ResourceBusy, domain.ResourceMaintenance:
			res.Status = domain.ResourceStatus(*req.Status)
		default:
			return nil, ErrValidation
		}
	}
	if req.OpensAt != nil {
		res.OpensAt = *req.OpensAt
	}
	if req.ClosesAt != nil {
		res.ClosesAt = *req.ClosesAt
	}
	if err := validateHours(res.OpensAt, res.ClosesAt); err != nil {
		return nil, err
	}
	if req.RequiredApprovals != nil {
		if *req.RequiredApprovals < 0 {
			return nil, ErrValidation
		}
		res.RequiredApprovals = *req.RequiredApprovals
	}

	if err := s.resources.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, tenantID, id int64) error {
	if _, err := s.resources.GetByID(ctx, tenantID, id); err != nil {
		return ErrNotFound
	}
	return s.resources.SoftDelete(ctx, tenantID, id)
}

// ScheduleMaintenance registers a maintenance window. Bounds are inclusive
// dates; the end may equal the start for a single-day window.
func (s *Service) ScheduleMaintenance(ctx context.Context, tenantID, resourceID int64, start, end time.Time, reason string) (*domain.MaintenanceSchedule, error) {
	if _, err := s.resources.GetByID(ctx, tenantID, resourceID); err != nil {
		return nil, ErrNotFound
	}
	if domain.DateOnly(end).Before(domain.DateOnly(start)) {
		return nil, ErrValidation
	}

	m := &domain.MaintenanceSchedule{
		ResourceID: resourceID,
		StartDate:  domain.DateOnly(start),
		EndDate:    domain.DateOnly(end),
		Reason:     reason,
	}
	if err := s.resources.AddMaintenance(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListMaintenance(ctx context.Context, tenantID, resourceID int64) ([]domain.MaintenanceSchedule, error) {
	if _, err := s.resources.GetByID(ctx, tenantID, resourceID); err != nil {
		return nil, ErrNotFound
	}
	return s.resources.ListMaintenance(ctx, resourceID)
}

func (s *Service) DeleteMaintenance(ctx context.Context, tenantID, resourceID, id int64) error {
	if _, err := s.resources.GetByID(ctx, tenantID, resourceID); err != nil {
		return ErrNotFound
	}
	return s.resources.DeleteMaintenance(ctx, resourceID, id)
}

// validateHours accepts empty opening hours (no constraint) or a well-formed
// "HH:MM" pair with the close strictly after the open.
func validateHours(opens, closes string) error {
	if opens == "" && closes == "" {
		return nil
	}
	openM, err := domain.ClockMinutes(opens)
	if err != nil {
		return ErrValidation
	}
	closeM, err := domain.ClockMinutes(closes)
	if err != nil {
		return ErrValidation
	}
	if closeM <= openM {
		return ErrValidation
	}
	return nil
}
