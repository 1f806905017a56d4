package auth

import (
	"context"
	"errors"

	"bookhub/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users   UserRepository
	tenants TenantProvider
	tokens  TokenIssuer
}

func NewService(users UserRepository, tenants TenantProvider, tokens TokenIssuer) *Service {
	return &Service{
		users:   users,
		tenants: tenants,
		tokens:  tokens,
	}
}

// Register creates a member account inside the tenant identified by slug.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	tenant, err := s.tenants.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if tenant.Status == domain.TenantSuspended {
		return nil, ErrTenantSuspended
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		TenantID:     tenant.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         domain.RoleMember,
	}
	if err := s.users.Create(ctx, u); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issue(u)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	tenant, err := s.tenants.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		return nil, ErrTenantNotFound
	}
	if tenant.Status == domain.TenantSuspended {
		return nil, ErrTenantSuspended
	}

	u, err := s.users.GetByEmail(ctx, tenant.ID, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *Service) issue(u *domain.User) (*AuthResponse, error) {
	token, err := s.tokens.GenerateToken(u.ID, u.TenantID, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token: token,
		User: &UserPayload{
			ID:       u.ID,
			TenantID: u.TenantID,
			Email:    u.Email,
			Name:     u.Name,
			Role:     string(u.Role),
		},
	}, nil
}
