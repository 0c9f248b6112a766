package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/api"
	"github.com/charlesng35/catalog/internal/app"
	"github.com/charlesng35/catalog/internal/app/maintenance"
	"github.com/charlesng35/catalog/internal/database"
	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/internal/monitoring/checks"
	"github.com/charlesng35/catalog/pkg/logger"
)

const probeTimeout = 2 * time.Second

// runtimeStack bundles long-lived services used by the HTTP server.
type runtimeStack struct {
	DB      *gorm.DB
	Cache   *app.CacheRuntime
	Monitor *monitoring.Module
	Cleaner *maintenance.Cleaner
	Router  *gin.Engine
}

// bootstrapRuntime initialises the database, cache, monitoring, background jobs and the HTTP router.
func bootstrapRuntime(ctx context.Context, cfg *app.Config, log *zap.Logger) (*runtimeStack, error) {
	stack := &runtimeStack{}
	var err error
	success := false

	defer func() {
		if !success {
			stack.Shutdown(context.Background(), log)
		}
	}()

	// enable gin debug mode
	if debug, _ := os.LookupEnv("GIN_DEBUG"); debug != "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	stack.DB, err = initialiseDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	stack.Cache, err = app.BuildCache(ctx, cfg.Cache, stack.DB)
	if err != nil {
		return nil, fmt.Errorf("initialise cache: %w", err)
	}

	stack.Monitor, err = monitoring.NewModule(monitoring.Options{})
	if err != nil {
		return nil, fmt.Errorf("initialise monitoring: %w", err)
	}
	monitoring.SetModule(stack.Monitor)

	if stack.Cache.Purgeable != nil {
		stack.Cleaner = maintenance.NewCleaner(stack.Cache.Purgeable, maintenance.WithPurgeSchedule(cfg.Cache.PurgeSchedule))
		if err := stack.Cleaner.Start(); err != nil {
			return nil, fmt.Errorf("start maintenance jobs: %w", err)
		}
	}

	registerProbes(stack)

	stack.Router, err = api.NewRouter(api.Dependencies{
		DB:      stack.DB,
		Config:  cfg,
		Cache:   stack.Cache,
		Monitor: stack.Monitor,
	})
	if err != nil {
		return nil, fmt.Errorf("build api router: %w", err)
	}

	success = true
	return stack, nil
}

func registerProbes(stack *runtimeStack) {
	health := stack.Monitor.Health()
	health.RegisterLiveness(monitoring.NewCheck("process", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusUp}
	}))
	health.RegisterReadiness(checks.Database(stack.DB, probeTimeout))
	health.RegisterReadiness(checks.Cache(stack.Cache.Store, checks.CacheSettings{
		Driver:       stack.Cache.Driver,
		Invalidation: string(stack.Cache.Invalidator.Policy()),
		OnError:      string(stack.Cache.Reader.ErrorPolicy()),
	}, probeTimeout))
	if stack.Cleaner.Enabled() {
		health.RegisterReadiness(checks.Maintenance(0))
	}
}

// Shutdown gracefully stops background jobs and releases resources.
func (s *runtimeStack) Shutdown(ctx context.Context, log *zap.Logger) {
	if s == nil {
		return
	}

	if s.Cleaner != nil {
		stopCtx := s.Cleaner.Stop()
		select {
		case <-stopCtx.Done():
		case <-ctx.Done():
			log.Warn("maintenance jobs still running at shutdown")
		}
	}

	if err := s.Cache.Close(); err != nil {
		log.Warn("cache shutdown", zap.Error(err))
	}

	if s.DB != nil {
		closeDatabase(s.DB, log)
	}
}

func initialiseDatabase(ctx context.Context, cfg *app.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database.DatabaseSettings()
	db, err := database.Open(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := database.AutoMigrateAndSeed(ctx, db, cfg.Seed.Enabled); err != nil {
		closeDatabase(db, logger.WithModule("database"))
		return nil, fmt.Errorf("auto-migrate database: %w", err)
	}

	log := logger.WithModule("database")
	log.Info("database connected",
		zap.String("driver", strings.ToLower(strings.TrimSpace(dbCfg.Driver))),
		zap.Bool("seed", cfg.Seed.Enabled),
	)

	return db, nil
}

func closeDatabase(db *gorm.DB, log *zap.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("failed to obtain underlying sql DB for closing", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Warn("failed to close database", zap.Error(err))
	}
}
