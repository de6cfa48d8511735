package redis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/zeyang/login-system/internal/core/ports"
)

const (
	tokenPrefix = "token:"
	tokenTTL    = 24 * time.Hour
)

// TokenStore maps opaque API tokens to account ids. A new token is minted
// per issuance call; Refresh extends the TTL of an existing token without
// rotating its value. Key format: token:<uuid>
type TokenStore struct {
	cache ports.TTLCache
}

func NewTokenStore(cache ports.TTLCache) *TokenStore {
	return &TokenStore{cache: cache}
}

// Create issues a fresh token for the account.
func (s *TokenStore) Create(ctx context.Context, accountID string) (string, error) {
	token := uuid.NewString()
	if err := s.cache.Set(ctx, tokenPrefix+token, accountID, tokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// Validate resolves a token to its account id. The second return value is
// false when the token is unknown or expired.
func (s *TokenStore) Validate(ctx context.Context, token string) (string, bool, error) {
	return s.cache.Get(ctx, tokenPrefix+token)
}

func (s *TokenStore) Refresh(ctx context.Context, token string) error {
	return s.cache.Expire(ctx, tokenPrefix+token, tokenTTL)
}

func (s *TokenStore) Invalidate(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, tokenPrefix+token)
}
