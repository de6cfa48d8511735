package ports

import (
	"context"

	"github.com/zeyang/login-system/internal/core/domain"
)

// AuthService is the login orchestrator consumed by the HTTP layer. Login
// returns a signed access token alongside the authenticated account;
// failures are the sentinel errors in the domain package.
type AuthService interface {
	Login(ctx context.Context, username, password string, client domain.ClientInfo) (string, *domain.Account, error)
	Logout(ctx context.Context, account *domain.Account, client domain.ClientInfo) error
}

// UserService covers registration and account lookups.
type UserService interface {
	Register(ctx context.Context, username, password, email, phone string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
}
