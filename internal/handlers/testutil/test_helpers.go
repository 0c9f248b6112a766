package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/api"
	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/cache"
	sharedtestutil "github.com/charlesng35/catalog/internal/database/testutil"
	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/internal/monitoring/checks"
	"github.com/charlesng35/catalog/pkg/pagination"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T       *testing.T
	DB      *gorm.DB
	Router  *gin.Engine
	Config  *app.Config
	Cache   *app.CacheRuntime
	Monitor *monitoring.Module
}

// EnvOption adjusts the configuration before the router is built.
type EnvOption func(*app.Config)

// WithInvalidation selects the cache invalidation policy.
func WithInvalidation(policy cache.InvalidationPolicy) EnvOption {
	return func(cfg *app.Config) {
		cfg.Cache.Invalidation = string(policy)
	}
}

// WithoutHealth disables the health endpoints.
func WithoutHealth() EnvOption {
	return func(cfg *app.Config) {
		cfg.Monitoring.Health.Enabled = false
	}
}

// NewEnv provisions a fresh handler test environment with migrations applied and an
// in-process cache.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := sharedtestutil.MustOpenTestDB(t, sharedtestutil.WithAutoMigrate())

	cfg := &app.Config{
		Server: app.ServerConfig{CORSOrigin: "*"},
		Cache: app.CacheConfig{
			Driver:       cache.DriverMemory,
			TTL:          time.Hour,
			Invalidation: string(cache.InvalidateItem),
			OnError:      string(cache.ErrorPolicyPropagate),
			MemoryTable:  "handlers:" + uuid.NewString(),
		},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	runtime, err := app.BuildCache(t.Context(), cfg.Cache, db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = runtime.Close() })

	mon, err := monitoring.NewModule(monitoring.Options{DisableGoCollector: true, DisableProcessCollector: true})
	require.NoError(t, err)
	mon.Health().RegisterLiveness(monitoring.NewCheck("process", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	}))
	mon.Health().RegisterReadiness(checks.Database(db, time.Second))
	mon.Health().RegisterReadiness(checks.Cache(runtime.Store, checks.CacheSettings{
		Driver:       runtime.Driver,
		Invalidation: cfg.Cache.Invalidation,
		OnError:      cfg.Cache.OnError,
	}, time.Second))

	router, err := api.NewRouter(api.Dependencies{
		DB:      db,
		Config:  cfg,
		Cache:   runtime,
		Monitor: mon,
	})
	require.NoError(t, err)

	return &Env{
		T:       t,
		DB:      db,
		Router:  router,
		Config:  cfg,
		Cache:   runtime,
		Monitor: mon,
	}
}

// Request executes an HTTP request against the router. A non-nil body is JSON encoded.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.T, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(e.T, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// Create posts body to path and returns the id of the created record.
func (e *Env) Create(path string, body any) string {
	e.T.Helper()

	w := e.Request(http.MethodPost, path, body)
	require.Equal(e.T, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID string `json:"id"`
	}
	DecodeInto(e.T, DecodeResponse(e.T, w).Result, &created)
	require.NotEmpty(e.T, created.ID)
	return created.ID
}

// Envelope mirrors the response envelope with the result left undecoded.
type Envelope struct {
	Succeed bool             `json:"succeed"`
	Message string           `json:"message"`
	Result  json.RawMessage  `json:"result"`
	Meta    *pagination.Meta `json:"meta"`
}

// DecodeResponse parses the response envelope from a recorder.
func DecodeResponse(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var resp Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

// DecodeInto unmarshals raw JSON into target.
func DecodeInto(t *testing.T, raw json.RawMessage, target any) {
	t.Helper()
	require.NotNil(t, raw)
	require.NoError(t, json.Unmarshal(raw, target), string(raw))
}
