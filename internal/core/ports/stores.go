package ports

import (
	"context"

	"github.com/zeyang/login-system/internal/core/domain"
)

// SessionStore keeps an account snapshot per live session. Entries expire
// after the session TTL unless explicitly renewed; last Put wins.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, account *domain.Account) error
	Get(ctx context.Context, sessionID string) (*domain.Account, error)
	Remove(ctx context.Context, sessionID string) error
	Renew(ctx context.Context, sessionID string) error
}

// TokenStore issues opaque API tokens mapped to an account id. Refresh
// extends the TTL without rotating the token value.
type TokenStore interface {
	Create(ctx context.Context, accountID string) (string, error)
	Validate(ctx context.Context, token string) (string, bool, error)
	Refresh(ctx context.Context, token string) error
	Invalidate(ctx context.Context, token string) error
}

// AttemptStore is the cache-local failed-login tracker. It is a second
// abuse signal, deliberately independent of the durable lock fields on the
// account record.
type AttemptStore interface {
	RecordFailedAttempt(ctx context.Context, username string) error
	IsAccountLocked(ctx context.Context, username string) (bool, error)
	ResetFailedAttempts(ctx context.Context, username string) error
}

// RateLimiter is a fixed-window per-IP request counter. The window resets
// only when the key expires, so bursts straddling a boundary can admit up
// to twice the nominal limit.
type RateLimiter interface {
	AllowRequest(ctx context.Context, ip string) (bool, error)
}
