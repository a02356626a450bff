package cache

import (
	"context"
	"time"
)

// Cache is a minimal string cache. Get returns "" on a miss so callers can
// treat misses and empty values alike.
type Cache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	GenerateKey(operation, key string) string
}
