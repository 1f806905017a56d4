package admin

import (
	"context"
	"errors"

	"bookhub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Service struct {
	tenants TenantRepository
	users   UserRepository
	audit   AuditRepository
	logger  *zap.Logger
}

func NewService(tenants TenantRepository, users UserRepository, audit AuditRepository, logger *zap.Logger) *Service {
	return &Service{
		tenants: tenants,
		users:   users,
		audit:   audit,
		logger:  logger,
	}
}

func (s *Service) CreateTenant(ctx context.Context, actorID int64, req CreateTenantRequest) (*domain.Tenant, error) {
	t := &domain.Tenant{
		Name:   req.Name,
		Slug:   req.Slug,
		Status: domain.TenantActive,
	}
	if err := s.tenants.Create(ctx, t); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.appendAudit(ctx, t.ID, actorID, "tenant.created", t.ID, nil)
	return t, nil
}

func (s *Service) GetTenant(ctx context.Context, id int64) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *Service) ListTenants(ctx context.Context, limit, offset int) ([]domain.Tenant, error) {
	return s.tenants.List(ctx, limit, offset)
}

// UpdateTenant patches name and merges feature/setting maps; omitted keys
// are left alone.
func (s *Service) UpdateTenant(ctx context.Context, actorID, id int64, req UpdateTenantRequest) (*domain.Tenant, error) {
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrValidation
		}
		t.Name = *req.Name
	}
	if req.Features != nil {
		if t.Features == nil {
			t.Features = datatypes.JSONMap{}
		}
		for k, v := range req.Features {
			t.Features[k] = v
		}
	}
	if req.Settings != nil {
		if t.Settings == nil {
			t.Settings = datatypes.JSONMap{}
		}
		for k, v := range req.Settings {
			t.Settings[k] = v
		}
	}

	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, t.ID, actorID, "tenant.updated", t.ID, nil)
	return t, nil
}

func (s *Service) SetTenantStatus(ctx context.Context, actorID, id int64, status domain.TenantStatus) (*domain.Tenant, error) {
	if status != domain.TenantActive && status != domain.TenantSuspended {
		return nil, ErrValidation
	}
	t, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	t.Status = status
	if err := s.tenants.Update(ctx, t); err != nil {
		return nil, err
	}
	s.appendAudit(ctx, t.ID, actorID, "tenant.status_changed", t.ID, map[string]any{"status": string(status)})
	return t, nil
}

func (s *Service) ListUsers(ctx context.Context, tenantID int64, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, tenantID, limit, offset)
}

func (s *Service) SetUserQuota(ctx context.Context, tenantID, actorID, userID int64, quota *int) error {
	if quota != nil && *quota < 0 {
		return ErrValidation
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.TenantID != tenantID {
		return ErrNotFound
	}
	if err := s.users.SetQuota(ctx, tenantID, userID, quota); err != nil {
		return err
	}
	detail := map[string]any{"quota": quota}
	s.appendAudit(ctx, tenantID, actorID, "user.quota_changed", userID, detail)
	return nil
}

func (s *Service) SetUserRole(ctx context.Context, tenantID, actorID, userID int64, role domain.UserRole) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u.TenantID != tenantID {
		return ErrNotFound
	}
	u.Role = role
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	s.appendAudit(ctx, tenantID, actorID, "user.role_changed", userID, map[string]any{"role": string(role)})
	return nil
}

func (s *Service) AuditTrail(ctx context.Context, tenantID int64, limit, offset int) ([]domain.AuditLog, error) {
	return s.audit.ListByTenant(ctx, tenantID, limit, offset)
}

func (s *Service) appendAudit(ctx context.Context, tenantID, actorID int64, action string, entityID int64, detail map[string]any) {
	err := s.audit.Append(ctx, &domain.AuditLog{
		TenantID: tenantID,
		ActorID:  actorID,
		Action:   action,
		Entity:   "admin",
		EntityID: entityID,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("audit append failed", zap.Error(err))
	}
}
