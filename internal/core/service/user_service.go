package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zeyang/login-system/internal/core/domain"
	"github.com/zeyang/login-system/internal/core/ports"
)

// UserService handles registration and account lookups.
type UserService struct {
	users  ports.UserRepository
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, hasher *PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, hasher: hasher, logger: logger}
}

// Register creates a new ACTIVE account with a fresh salt and digest. The
// repository's uniqueness constraint is the authoritative duplicate guard;
// Create surfaces domain.ErrDuplicateUsername on conflict. Either the full
// record is persisted or nothing is.
func (s *UserService) Register(ctx context.Context, username, password, email, phone string) (*domain.Account, error) {
	if username == "" || password == "" || email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:       username,
		Email:          email,
		Phone:          phone,
		PasswordHash:   s.hasher.Hash(password, salt),
		Salt:           salt,
		Status:         domain.StatusActive,
		FailedAttempts: 0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.users.Create(ctx, account)
	if err != nil {
		if err == domain.ErrDuplicateUsername {
			return nil, err
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.logger.Info().Str("username", username).Str("account_id", created.ID).Msg("account registered")
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.users.FindByUsername(ctx, username)
}
