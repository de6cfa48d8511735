package redis

import (
	"context"
	"time"

	"github.com/zeyang/login-system/internal/core/ports"
)

const (
	attemptsPrefix = "login_attempts:"
	lockPrefix     = "account_lock:"

	maxAttempts  = 5
	attemptsTTL  = 24 * time.Hour
	lockFlagTTL  = 30 * time.Minute
	lockSentinel = "locked"
)

// AttemptStore counts failed logins per username in the cache and raises a
// short-lived lock flag once the threshold is crossed. It is a second abuse
// signal next to the durable lock fields on the account record; the two are
// deliberately not unified.
type AttemptStore struct {
	cache ports.TTLCache
}

func NewAttemptStore(cache ports.TTLCache) *AttemptStore {
	return &AttemptStore{cache: cache}
}

// RecordFailedAttempt increments the per-username counter, starting the
// window on the first increment. Crossing the threshold sets the lock flag
// with its own shorter TTL. Concurrent callers can both cross the threshold
// and both set the flag; the write is idempotent so that is harmless.
func (s *AttemptStore) RecordFailedAttempt(ctx context.Context, username string) error {
	key := attemptsPrefix + username
	count, err := s.cache.IncrementAndGet(ctx, key)
	if err != nil {
		return err
	}
	if count == 1 {
		if err := s.cache.Expire(ctx, key, attemptsTTL); err != nil {
			return err
		}
	}
	if count >= maxAttempts {
		return s.cache.Set(ctx, lockPrefix+username, lockSentinel, lockFlagTTL)
	}
	return nil
}

// IsAccountLocked checks only the flag's presence; the counter itself is
// not consulted.
func (s *AttemptStore) IsAccountLocked(ctx context.Context, username string) (bool, error) {
	return s.cache.Exists(ctx, lockPrefix+username)
}

// ResetFailedAttempts drops the counter. The lock flag, if set, runs out on
// its own.
func (s *AttemptStore) ResetFailedAttempts(ctx context.Context, username string) error {
	return s.cache.Delete(ctx, attemptsPrefix+username)
}
