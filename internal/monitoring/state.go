package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type statStore struct {
	cache       sync.Map // namespace -> *cacheStats
	maintenance sync.Map // job -> *maintenanceStats
}

func newStatStore() *statStore {
	return &statStore{}
}

func (s *statStore) cacheEntry(namespace string) *cacheStats {
	if value, ok := s.cache.Load(namespace); ok {
		return value.(*cacheStats)
	}
	actual, _ := s.cache.LoadOrStore(namespace, &cacheStats{})
	return actual.(*cacheStats)
}

func (s *statStore) maintenanceEntry(job string) *maintenanceStats {
	if value, ok := s.maintenance.Load(job); ok {
		return value.(*maintenanceStats)
	}
	actual, _ := s.maintenance.LoadOrStore(job, &maintenanceStats{})
	return actual.(*maintenanceStats)
}

func (s *statStore) summary() Summary {
	cache := []CacheNamespaceSummary{}
	s.cache.Range(func(key, value any) bool {
		cache = append(cache, value.(*cacheStats).snapshot(key.(string)))
		return true
	})
	sort.Slice(cache, func(i, j int) bool { return cache[i].Namespace < cache[j].Namespace })

	jobs := []MaintenanceJobSummary{}
	s.maintenance.Range(func(key, value any) bool {
		jobs = append(jobs, value.(*maintenanceStats).snapshot(key.(string)))
		return true
	})
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Job < jobs[j].Job })

	return Summary{
		GeneratedAt: time.Now(),
		Cache:       cache,
		Maintenance: MaintenanceSummary{Jobs: jobs},
	}
}

type cacheStats struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	errors        atomic.Uint64
	invalidations atomic.Uint64
}

func (c *cacheStats) record(result string) {
	switch result {
	case CacheHit:
		c.hits.Add(1)
	case CacheMiss:
		c.misses.Add(1)
	default:
		c.errors.Add(1)
	}
}

func (c *cacheStats) snapshot(namespace string) CacheNamespaceSummary {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var ratio float64
	if lookups := hits + misses; lookups > 0 {
		ratio = float64(hits) / float64(lookups)
	}

	return CacheNamespaceSummary{
		Namespace:     namespace,
		Hits:          hits,
		Misses:        misses,
		Errors:        c.errors.Load(),
		Invalidations: c.invalidations.Load(),
		HitRatio:      ratio,
	}
}

type maintenanceStats struct {
	lastStatus           atomic.Value // string
	lastError            atomic.Value // string
	lastRun              atomic.Int64 // unix nano
	lastDuration         atomic.Int64
	consecutiveFailures  atomic.Uint64
	consecutiveSuccesses atomic.Uint64
	lastSuccessfulRun    atomic.Int64
	totalRuns            atomic.Uint64
}

func (m *maintenanceStats) snapshot(job string) MaintenanceJobSummary {
	status, _ := m.lastStatus.Load().(string)
	errMsg, _ := m.lastError.Load().(string)

	return MaintenanceJobSummary{
		Job:                 job,
		LastStatus:          status,
		LastRunAt:           time.Unix(0, m.lastRun.Load()),
		LastDuration:        time.Duration(m.lastDuration.Load()),
		LastError:           errMsg,
		ConsecutiveFailures: m.consecutiveFailures.Load(),
		ConsecutiveSuccess:  m.consecutiveSuccesses.Load(),
		LastSuccessAt:       time.Unix(0, m.lastSuccessfulRun.Load()),
		TotalRuns:           m.totalRuns.Load(),
	}
}

func (m *maintenanceStats) record(result, message string, duration time.Duration) {
	if duration < 0 {
		duration = 0
	}
	now := time.Now()
	m.lastStatus.Store(result)
	m.lastError.Store(message)
	m.lastRun.Store(now.UnixNano())
	m.lastDuration.Store(int64(duration))
	m.totalRuns.Add(1)

	if result == "success" {
		m.consecutiveFailures.Store(0)
		m.consecutiveSuccesses.Add(1)
		m.lastSuccessfulRun.Store(now.UnixNano())
		return
	}
	m.consecutiveFailures.Add(1)
	m.consecutiveSuccesses.Store(0)
}
