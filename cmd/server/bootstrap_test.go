package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/cache"
	"github.com/charlesng35/catalog/internal/models"
)

func testConfig(t *testing.T, driver string) *app.Config {
	t.Helper()
	return &app.Config{
		Server: app.ServerConfig{CORSOrigin: "*", ShutdownTimeout: time.Second},
		Database: app.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "catalog.sqlite"),
		},
		Cache: app.CacheConfig{
			Driver:        driver,
			TTL:           time.Minute,
			Invalidation:  string(cache.InvalidateItem),
			OnError:       string(cache.ErrorPolicyPropagate),
			PurgeSchedule: "@every 1h",
			MemoryTable:   "bootstrap:" + t.Name(),
		},
		Seed: app.SeedConfig{Enabled: true},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
}

func TestBootstrapRuntimeWithDatabaseCache(t *testing.T) {
	stack, err := bootstrapRuntime(context.Background(), testConfig(t, cache.DriverDatabase), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), zap.NewNop()) })

	require.Equal(t, cache.DriverDatabase, stack.Cache.Driver)
	require.NotNil(t, stack.Cache.Purgeable)
	require.True(t, stack.Cleaner.Enabled())

	var categories int64
	require.NoError(t, stack.DB.Model(&models.Category{}).Count(&categories).Error)
	require.Positive(t, categories)

	rec := httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"component":"maintenance"`)

	rec = httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/category/index", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestBootstrapRuntimeWithMemoryCacheSkipsCleaner(t *testing.T) {
	cfg := testConfig(t, cache.DriverMemory)
	cfg.Seed.Enabled = false

	stack, err := bootstrapRuntime(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { stack.Shutdown(context.Background(), zap.NewNop()) })

	require.Nil(t, stack.Cleaner)
	require.False(t, stack.Cleaner.Enabled())

	rec := httptest.NewRecorder()
	stack.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/category/index", nil))
	require.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestBootstrapRuntimeRejectsUnknownCacheDriver(t *testing.T) {
	_, err := bootstrapRuntime(context.Background(), testConfig(t, "memcached"), zap.NewNop())
	require.ErrorContains(t, err, "unsupported driver")
}

func TestLoadApplicationConfigMissingPath(t *testing.T) {
	_, err := loadApplicationConfig(filepath.Join(t.TempDir(), "missing"))
	require.ErrorContains(t, err, "does not exist")
}

func TestLoadApplicationConfigFromFile(t *testing.T) {
	cfg, err := loadApplicationConfig(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, "memory", cfg.Cache.Driver)
}
