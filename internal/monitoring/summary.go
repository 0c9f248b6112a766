package monitoring

import "time"

// Summary is a point-in-time view of cache effectiveness and background job health.
type Summary struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Cache       []CacheNamespaceSummary `json:"cache"`
	Maintenance MaintenanceSummary      `json:"maintenance"`
}

type CacheNamespaceSummary struct {
	Namespace     string  `json:"namespace"`
	Hits          uint64  `json:"hits"`
	Misses        uint64  `json:"misses"`
	Errors        uint64  `json:"errors"`
	Invalidations uint64  `json:"invalidations"`
	HitRatio      float64 `json:"hit_ratio"`
}

type MaintenanceSummary struct {
	Jobs []MaintenanceJobSummary `json:"jobs"`
}

type MaintenanceJobSummary struct {
	Job                 string        `json:"job"`
	LastStatus          string        `json:"last_status"`
	LastRunAt           time.Time     `json:"last_run_at"`
	LastDuration        time.Duration `json:"last_duration"`
	LastError           string        `json:"last_error,omitempty"`
	ConsecutiveFailures uint64        `json:"consecutive_failures"`
	ConsecutiveSuccess  uint64        `json:"consecutive_success"`
	LastSuccessAt       time.Time     `json:"last_success_at"`
	TotalRuns           uint64        `json:"total_runs"`
}

// Snapshot returns a summary from the current module, or an empty one when unset.
func Snapshot() Summary {
	if module := CurrentModule(); module != nil && module.stats != nil {
		return module.stats.summary()
	}
	return Summary{GeneratedAt: time.Now()}
}
