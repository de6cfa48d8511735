package redis

import (
	"context"
	"time"

	"github.com/zeyang/login-system/internal/core/ports"
)

const (
	ipLimitPrefix = "ip_limit:"

	maxRequests = 10
	windowTTL   = 60 * time.Second
)

// RateLimiter is a fixed-window per-IP counter. The window starts on the
// first request and resets only when the key expires, so a burst straddling
// a boundary can admit up to twice the nominal limit.
type RateLimiter struct {
	cache ports.TTLCache
}

func NewRateLimiter(cache ports.TTLCache) *RateLimiter {
	return &RateLimiter{cache: cache}
}

// AllowRequest counts the request and reports whether it fits the window.
func (l *RateLimiter) AllowRequest(ctx context.Context, ip string) (bool, error) {
	key := ipLimitPrefix + ip
	count, err := l.cache.IncrementAndGet(ctx, key)
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.cache.Expire(ctx, key, windowTTL); err != nil {
			return false, err
		}
	}
	return count <= maxRequests, nil
}
