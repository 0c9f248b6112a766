package cache

import (
	"context"
	"time"
)

// Store is the key/value contract the catalog reads and invalidates through.
// A ttl of zero means the entry never expires.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeleteByPattern removes every key matching the glob pattern (*, ?, [...]) and reports how
	// many were removed.
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// Pinger is implemented by stores backed by a remote server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Driver names accepted by cache.driver.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverDatabase = "database"
)
