package ports

import (
	"context"
	"time"
)

// TTLCache is the generic expiring key-value store the ephemeral abuse
// stores are built on. Get returns ("", false, nil) for an absent or
// expired key. Individual operations are atomic; multi-step sequences
// built on top of them are not.
type TTLCache interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, bool, error)
	Delete(ctx context.Context, key string) error
	IncrementAndGet(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}
