package auth

import (
	"context"

	"bookhub/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.User, error)
}

type TenantProvider interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
}

type TokenIssuer interface {
	GenerateToken(userID, tenantID int64, role string) (string, error)
}
