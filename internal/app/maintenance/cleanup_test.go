package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/catalog/internal/cache"
	testutil "github.com/charlesng35/catalog/internal/database/testutil"
	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/monitoring"
)

func TestCleanerPurgesExpiredEntries(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	store := cache.NewDatabaseStore(db)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "companies:active:page:1:limit:10", []byte(`{}`), time.Minute))
	require.NoError(t, store.Set(ctx, "companies:active:page:2:limit:10", []byte(`{}`), 2*time.Hour))

	later := time.Now().Add(time.Hour)
	cleaner := NewCleaner(store, WithNow(func() time.Time { return later }))
	require.True(t, cleaner.Enabled())

	removed, err := cleaner.PurgeNow(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	var remaining int64
	require.NoError(t, db.Model(&models.CacheEntry{}).Count(&remaining).Error)
	require.Equal(t, int64(1), remaining)
}

type failingPurger struct{}

func (failingPurger) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, errors.New("database is locked")
}

func TestCleanerRunOnceAggregatesErrors(t *testing.T) {
	module, err := monitoring.NewModule(monitoring.Options{DisableGoCollector: true, DisableProcessCollector: true})
	require.NoError(t, err)
	previous := monitoring.CurrentModule()
	monitoring.SetModule(module)
	t.Cleanup(func() { monitoring.SetModule(previous) })

	cleaner := NewCleaner(failingPurger{})
	err = cleaner.RunOnce(context.Background())
	require.ErrorContains(t, err, "database is locked")

	summary := monitoring.Snapshot()
	require.Len(t, summary.Maintenance.Jobs, 1)
	require.Equal(t, JobCachePurge, summary.Maintenance.Jobs[0].Job)
	require.Equal(t, 1, int(summary.Maintenance.Jobs[0].ConsecutiveFailures))
}

func TestCleanerWithoutPurgerIsNoop(t *testing.T) {
	cleaner := NewCleaner(nil)
	require.False(t, cleaner.Enabled())
	require.NoError(t, cleaner.Start())
	require.NoError(t, cleaner.RunOnce(context.Background()))

	_, err := cleaner.PurgeNow(context.Background())
	require.Error(t, err)
}

func TestCleanerStartSchedulesJob(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	scheduler := cron.New(cron.WithLogger(cron.DiscardLogger))

	cleaner := NewCleaner(cache.NewDatabaseStore(db), WithCron(scheduler), WithPurgeSchedule("@every 1h"))
	require.NoError(t, cleaner.Start())
	t.Cleanup(func() { <-cleaner.Stop().Done() })

	require.Len(t, scheduler.Entries(), 1)
}

func TestCleanerRejectsInvalidSchedule(t *testing.T) {
	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())

	cleaner := NewCleaner(cache.NewDatabaseStore(db), WithPurgeSchedule("not a schedule"))
	require.Error(t, cleaner.Start())
}
