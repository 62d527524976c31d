package cache

import (
	"context"
	"time"
)

// Store remembers keys for a limited time. The contact form uses it to
// acknowledge repeated submissions without sending them twice.
type Store interface {
	// Claim records key for ttl. It reports false when key is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// Release forgets key so a later Claim succeeds again.
	Release(ctx context.Context, key string) error
	Close() error
}
