package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zeyang/login-system/internal/core/domain"
	"github.com/zeyang/login-system/internal/core/ports"
)

const (
	sessionPrefix = "session:"
	sessionTTL    = 30 * time.Minute
)

// SessionStore keeps a JSON snapshot of the account per session id.
// Sessions are never renewed implicitly; Renew must be called to extend
// one. Key format: session:<session_id>
type SessionStore struct {
	cache ports.TTLCache
}

func NewSessionStore(cache ports.TTLCache) *SessionStore {
	return &SessionStore{cache: cache}
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, account *domain.Account) error {
	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.cache.Set(ctx, sessionPrefix+sessionID, string(payload), sessionTTL)
}

// Get returns the stored snapshot, or domain.ErrUserNotFound when the
// session is absent or expired.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (*domain.Account, error) {
	val, ok, err := s.cache.Get(ctx, sessionPrefix+sessionID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrUserNotFound
	}

	var account domain.Account
	if err := json.Unmarshal([]byte(val), &account); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &account, nil
}

func (s *SessionStore) Remove(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionPrefix+sessionID)
}

// Renew resets the session TTL without touching the snapshot.
func (s *SessionStore) Renew(ctx context.Context, sessionID string) error {
	return s.cache.Expire(ctx, sessionPrefix+sessionID, sessionTTL)
}
