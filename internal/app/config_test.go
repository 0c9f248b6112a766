package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/database/testutil"
)

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("testdata"))
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)
	require.Equal(t, "https://shop.example.com", cfg.Server.CORSOrigin)

	require.Equal(t, "postgres", cfg.Database.Driver)
	settings := cfg.Database.DatabaseSettings()
	require.Equal(t, "db.example.com", settings.Host)
	require.Equal(t, 5433, settings.Port)
	require.Equal(t, "catalog", settings.Name)
	require.Equal(t, "secret", settings.Password)

	require.Equal(t, cache.DriverRedis, cfg.Cache.Driver)
	require.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "namespace", cfg.Cache.Invalidation)
	require.Equal(t, "degrade", cfg.Cache.OnError)
	require.Equal(t, 2, cfg.Cache.Redis.DB)
	require.Equal(t, 2*time.Second, cfg.Cache.Redis.Timeout)
	require.Equal(t, "catalog:", cfg.Cache.Redis.KeyPrefix)

	require.False(t, cfg.Seed.Enabled)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "*", cfg.Server.CORSOrigin)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/catalog.sqlite", cfg.Database.Path)
	require.Equal(t, cache.DriverMemory, cfg.Cache.Driver)
	require.Equal(t, time.Hour, cfg.Cache.TTL)
	require.Equal(t, "item", cfg.Cache.Invalidation)
	require.Equal(t, "propagate", cfg.Cache.OnError)
	require.Equal(t, "@every 10m", cfg.Cache.PurgeSchedule)
	require.Equal(t, "catalog", cfg.Cache.MemoryTable)
	require.True(t, cfg.Seed.Enabled)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_SERVER_PORT", "4100")
	t.Setenv("CATALOG_CACHE_DRIVER", "database")
	t.Setenv("CATALOG_CACHE_TTL", "90s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 4100, cfg.Server.Port)
	require.Equal(t, cache.DriverDatabase, cfg.Cache.Driver)
	require.Equal(t, 90*time.Second, cfg.Cache.TTL)
}

func TestLoadConfigRejectsUnknownPolicy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CATALOG_CACHE_INVALIDATION", "everything")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "invalidation policy")
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("cache:\n  driver: memcached\n"), 0o600))
	t.Chdir(dir)

	_, err := LoadConfig(dir)
	require.ErrorContains(t, err, "unsupported cache driver")
}

func TestBuildCacheMemory(t *testing.T) {
	runtime, err := BuildCache(context.Background(), CacheConfig{Driver: "memory", TTL: time.Minute}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = runtime.Close() })

	require.Equal(t, cache.DriverMemory, runtime.Driver)
	require.Nil(t, runtime.Purgeable)
	require.Equal(t, time.Minute, runtime.Reader.TTL())
	require.Equal(t, cache.InvalidateItem, runtime.Invalidator.Policy())
}

func TestBuildCacheRedis(t *testing.T) {
	server := miniredis.RunT(t)

	runtime, err := BuildCache(context.Background(), CacheConfig{
		Driver:       "redis",
		TTL:          time.Minute,
		Invalidation: "namespace",
		Redis:        RedisCacheConfig{Address: server.Addr(), KeyPrefix: "test:"},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = runtime.Close() })

	require.Equal(t, cache.DriverRedis, runtime.Driver)
	require.Equal(t, cache.InvalidateNamespace, runtime.Invalidator.Policy())

	ctx := context.Background()
	require.NoError(t, runtime.Store.Set(ctx, "companies:active:page:1:limit:10", []byte("{}"), time.Minute))
	require.True(t, server.Exists("test:companies:active:page:1:limit:10"))
}

func TestBuildCacheRedisFallsBackToDatabase(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	runtime, err := BuildCache(context.Background(), CacheConfig{
		Driver: "redis",
		TTL:    time.Minute,
		Redis:  RedisCacheConfig{Address: "127.0.0.1:1", Timeout: 200 * time.Millisecond},
	}, db)
	require.NoError(t, err)

	require.Equal(t, cache.DriverDatabase, runtime.Driver)
	require.NotNil(t, runtime.Purgeable)
}

func TestBuildCacheRedisWithoutFallbackFails(t *testing.T) {
	_, err := BuildCache(context.Background(), CacheConfig{
		Driver: "redis",
		Redis:  RedisCacheConfig{Address: "127.0.0.1:1", Timeout: 200 * time.Millisecond},
	}, nil)
	require.Error(t, err)
}
