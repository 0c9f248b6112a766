package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/pkg/logger"
)

// RedisClientConfig converts the application cache configuration into the cache package representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:   strings.TrimSpace(c.Redis.Address),
		Username:  strings.TrimSpace(c.Redis.Username),
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		TLS:       c.Redis.TLS,
		Timeout:   c.Redis.Timeout,
		KeyPrefix: c.Redis.KeyPrefix,
	}
}

// CacheRuntime is the cache layer assembled from configuration.
type CacheRuntime struct {
	// Store is the instrumented store every read and invalidation goes through.
	Store cache.Store
	// Driver names the backend that was actually selected.
	Driver      string
	Reader      *cache.Reader
	Invalidator *cache.Invalidator
	// Purgeable is set when expired entries need a scheduled purge.
	Purgeable *cache.DatabaseStore

	closeFn func() error
}

// Close releases the backend connection, if any.
func (r *CacheRuntime) Close() error {
	if r == nil || r.closeFn == nil {
		return nil
	}
	return r.closeFn()
}

// BuildCache selects the store named by cfg.Driver. A Redis server that cannot be reached at
// start-up degrades to the database store with a warning.
func BuildCache(ctx context.Context, cfg CacheConfig, db *gorm.DB) (*CacheRuntime, error) {
	invalidation, err := cache.ParseInvalidationPolicy(cfg.Invalidation)
	if err != nil {
		return nil, err
	}
	onError, err := cache.ParseErrorPolicy(cfg.OnError)
	if err != nil {
		return nil, err
	}

	log := logger.WithModule("cache")
	runtime := &CacheRuntime{}

	var store cache.Store
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case cache.DriverRedis:
		redisStore, redisErr := cache.NewRedisStore(ctx, cfg.RedisClientConfig())
		if redisErr == nil {
			store = redisStore
			runtime.closeFn = redisStore.Close
			break
		}
		if db == nil {
			return nil, fmt.Errorf("cache: redis unavailable and no database fallback: %w", redisErr)
		}
		log.Warn("redis unavailable, falling back to database cache", zap.Error(redisErr))
		driver = cache.DriverDatabase
		fallthrough
	case cache.DriverDatabase:
		if db == nil {
			return nil, fmt.Errorf("cache: database driver requires a database handle")
		}
		dbStore := cache.NewDatabaseStore(db)
		store = dbStore
		runtime.Purgeable = dbStore
	case cache.DriverMemory, "":
		driver = cache.DriverMemory
		store = cache.NewMemoryStore(cfg.MemoryTable)
	default:
		return nil, fmt.Errorf("cache: unsupported driver %q", cfg.Driver)
	}

	runtime.Driver = driver
	runtime.Store = cache.Instrument(store, driver)
	runtime.Reader = cache.NewReader(runtime.Store,
		cache.WithTTL(cfg.TTL),
		cache.WithErrorPolicy(onError),
		cache.WithLogger(log),
	)
	runtime.Invalidator = cache.NewInvalidator(runtime.Store, invalidation, onError)

	log.Info("cache configured",
		zap.String("driver", driver),
		zap.Duration("ttl", runtime.Reader.TTL()),
		zap.String("invalidation", string(invalidation)),
		zap.String("on_error", string(onError)),
	)
	return runtime, nil
}
