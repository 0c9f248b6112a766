package checks

import (
	"context"
	"time"

	"github.com/charlesng35/catalog/internal/monitoring"
)

const defaultCacheTimeout = 2 * time.Second

// Pinger is implemented by cache stores that hold a remote connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CacheSettings describes the cache layer as configured; it is echoed in every probe result.
type CacheSettings struct {
	Driver       string
	Invalidation string
	OnError      string
}

func (s CacheSettings) metadata() map[string]string {
	meta := map[string]string{"driver": s.Driver}
	if s.Invalidation != "" {
		meta["invalidation"] = s.Invalidation
	}
	if s.OnError != "" {
		meta["onError"] = s.OnError
	}
	return meta
}

// Cache returns a readiness probe for the active cache store. In-process stores have nothing to
// ping and always report up.
func Cache(store any, settings CacheSettings, timeout time.Duration) monitoring.Check {
	return monitoring.NewCheck("cache", func(ctx context.Context) monitoring.ProbeResult {
		start := time.Now()
		if store == nil {
			return monitoring.ProbeResult{
				Status:   monitoring.StatusDown,
				Details:  "cache store not configured",
				Duration: time.Since(start),
				Metadata: settings.metadata(),
			}
		}

		if pinger, ok := store.(Pinger); ok {
			probeCtx, cancel := context.WithTimeout(ctx, chooseTimeout(timeout, defaultCacheTimeout))
			defer cancel()

			if err := pinger.Ping(probeCtx); err != nil {
				return withMetadata(monitoring.ResultFromError("cache", err, time.Since(start)), settings.metadata())
			}
		}

		return monitoring.ProbeResult{
			Status:   monitoring.StatusUp,
			Duration: time.Since(start),
			Metadata: settings.metadata(),
		}
	})
}
