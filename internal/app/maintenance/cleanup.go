package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/catalog/internal/monitoring"
	"github.com/charlesng35/catalog/pkg/logger"
)

const (
	defaultPurgeSpec = "@every 10m"

	// JobCachePurge names the expired cache row purge in metrics and health reports.
	JobCachePurge = "cache_purge"
)

var errNoPurger = errors.New("maintenance: no cache purger configured")

// Purger removes cache entries whose TTL elapsed before now.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

// Cleaner runs background maintenance on a cron schedule. Today that is the purge of expired
// rows from the database cache store, which unlike Redis does not expire keys by itself.
type Cleaner struct {
	purger        Purger
	cron          *cron.Cron
	now           func() time.Time
	log           *zap.Logger
	purgeSchedule string
	timeout       time.Duration
}

// Option customises the Cleaner.
type Option func(*Cleaner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(cleaner *Cleaner) {
		if c != nil {
			cleaner.cron = c
		}
	}
}

// WithNow overrides the clock used for expiry comparisons.
func WithNow(now func() time.Time) Option {
	return func(cleaner *Cleaner) {
		if now != nil {
			cleaner.now = now
		}
	}
}

// WithPurgeSchedule overrides the cron specification of the cache purge.
func WithPurgeSchedule(spec string) Option {
	return func(cleaner *Cleaner) {
		if spec != "" {
			cleaner.purgeSchedule = spec
		}
	}
}

// NewCleaner constructs a Cleaner. A nil purger disables the purge job.
func NewCleaner(purger Purger, opts ...Option) *Cleaner {
	cleaner := &Cleaner{
		purger:        purger,
		now:           time.Now,
		purgeSchedule: defaultPurgeSpec,
		timeout:       time.Minute,
		log:           logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(cleaner)
	}

	if cleaner.cron == nil {
		cleaner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}
	return cleaner
}

// Enabled reports whether any job is configured.
func (c *Cleaner) Enabled() bool {
	return c != nil && c.purger != nil
}

// Start registers the jobs with the scheduler and launches it.
func (c *Cleaner) Start() error {
	if !c.Enabled() {
		return nil
	}

	if _, err := c.cron.AddFunc(c.purgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()
		if _, err := c.purgeCache(ctx); err != nil {
			c.log.Warn("cache purge failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("maintenance: schedule %s: %w", JobCachePurge, err)
	}

	c.cron.Start()
	c.log.Info("maintenance scheduled", zap.String("job", JobCachePurge), zap.String("schedule", c.purgeSchedule))
	return nil
}

// Stop halts the underlying scheduler. The returned context is done once running jobs finish.
func (c *Cleaner) Stop() context.Context {
	if c == nil || c.cron == nil {
		return context.Background()
	}
	return c.cron.Stop()
}

// RunOnce executes every configured job sequentially. Used in tests and during shutdown.
func (c *Cleaner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error
	if c.purger != nil {
		if _, err := c.purgeCache(ctx); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func (c *Cleaner) purgeCache(ctx context.Context) (int64, error) {
	start := time.Now()
	removed, err := c.purger.PurgeExpired(ctx, c.now())
	duration := time.Since(start)

	if err != nil {
		monitoring.RecordMaintenanceRun(JobCachePurge, "failure", err.Error(), duration)
		return 0, fmt.Errorf("maintenance: %s: %w", JobCachePurge, err)
	}

	monitoring.RecordMaintenanceRun(JobCachePurge, "success", "", duration)
	if removed > 0 {
		c.log.Debug("expired cache entries purged", zap.Int64("removed", removed))
	}
	return removed, nil
}

// PurgeNow runs the cache purge immediately.
func (c *Cleaner) PurgeNow(ctx context.Context) (int64, error) {
	if c == nil || c.purger == nil {
		return 0, errNoPurger
	}
	return c.purgeCache(ctx)
}
