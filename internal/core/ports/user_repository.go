package ports

import (
	"context"

	"github.com/zeyang/login-system/internal/core/domain"
)

// UserRepository defines the durable store for accounts. Create must fail
// with domain.ErrDuplicateUsername on a username uniqueness violation; the
// storage-level constraint is the authoritative guard, not the caller's
// lookup.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
}
