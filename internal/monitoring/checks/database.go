package checks

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/internal/monitoring"
)

const defaultDatabaseTimeout = 2 * time.Second

var catalogTables = []struct {
	name  string
	model any
}{
	{"companies", &models.Company{}},
	{"categories", &models.Category{}},
	{"subcategories", &models.Subcategory{}},
	{"products", &models.Product{}},
}

// Database returns a readiness probe that pings the database and confirms the catalog tables
// are migrated. A reachable database missing a table reports degraded.
func Database(db *gorm.DB, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("database", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if db == nil {
			return monitoring.ProbeResult{
				Status:   monitoring.StatusDown,
				Details:  "database not configured",
				Duration: time.Since(start),
			}
		}
		meta := map[string]string{"dialect": db.Dialector.Name()}

		sqlDB, err := db.DB()
		if err != nil {
			return withMetadata(monitoring.ResultFromError("database", err, time.Since(start)), meta)
		}

		probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultDatabaseTimeout))
		defer cancel()

		if err := sqlDB.PingContext(probeCtx); err != nil {
			return withMetadata(monitoring.ResultFromError("database", err, time.Since(start)), meta)
		}

		migrator := db.WithContext(probeCtx).Migrator()
		var missing []string
		for _, table := range catalogTables {
			if !migrator.HasTable(table.model) {
				missing = append(missing, table.name)
			}
		}
		if len(missing) > 0 {
			return monitoring.ProbeResult{
				Status:   monitoring.StatusDegraded,
				Details:  "missing tables: " + strings.Join(missing, ", "),
				Duration: time.Since(start),
				Metadata: meta,
			}
		}

		return monitoring.ProbeResult{
			Status:   monitoring.StatusUp,
			Duration: time.Since(start),
			Metadata: meta,
		}
	})
}

func withMetadata(result monitoring.ProbeResult, meta map[string]string) monitoring.ProbeResult {
	result.Metadata = meta
	return result
}

func chooseTimeout(provided, fallback time.Duration) time.Duration {
	if provided <= 0 {
		return fallback
	}
	return provided
}
