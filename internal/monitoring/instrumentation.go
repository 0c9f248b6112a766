package monitoring

import (
	"strings"
	"time"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RecordCacheLookup counts one cache-aside lookup for namespace.
func RecordCacheLookup(namespace, result string) {
	module := CurrentModule()
	if module == nil {
		return
	}
	ns := normalizeLabel(namespace)
	res := normalizeLabel(result)
	module.metrics.cacheRequests.WithLabelValues(ns, res).Inc()
	module.stats.cacheEntry(ns).record(res)
}

// RecordCacheInvalidation counts an invalidation. scope is "item" or "namespace".
func RecordCacheInvalidation(namespace, scope string) {
	module := CurrentModule()
	if module == nil {
		return
	}
	ns := normalizeLabel(namespace)
	module.metrics.cacheInvalidations.WithLabelValues(ns, normalizeLabel(scope)).Inc()
	module.stats.cacheEntry(ns).invalidations.Add(1)
}

// ObserveCacheStore captures the latency of a single store round trip.
func ObserveCacheStore(driver, operation string, duration time.Duration) {
	module := CurrentModule()
	if module == nil {
		return
	}
	observeDuration(module.metrics.cacheStoreLatency.WithLabelValues(normalizeLabel(driver), normalizeLabel(operation)), duration)
}

// RecordCatalogWrite counts a create/update/remove and its outcome.
func RecordCatalogWrite(entity, operation, result string) {
	module := CurrentModule()
	if module == nil {
		return
	}
	module.metrics.catalogWrites.WithLabelValues(normalizeLabel(entity), normalizeLabel(operation), normalizeLabel(result)).Inc()
}

// ObserveAPILatency captures the HTTP request latency for the supplied route.
func ObserveAPILatency(method, path, status string, duration time.Duration) {
	module := CurrentModule()
	if module == nil {
		return
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = "UNKNOWN"
	}
	path = sanitizePath(path)
	if path == "" {
		path = "unknown"
	}
	status = strings.TrimSpace(status)
	if status == "" {
		status = "unknown"
	}
	observeDuration(module.metrics.apiLatency.WithLabelValues(method, path, status), duration)
}

// RecordMaintenanceRun records the completion of a maintenance job.
func RecordMaintenanceRun(job, result, message string, duration time.Duration) {
	module := CurrentModule()
	if module == nil {
		return
	}
	jobID := normalizeLabel(job)
	result = normalizeLabel(result)
	module.metrics.maintenanceRuns.WithLabelValues(jobID, result).Inc()
	observeDuration(module.metrics.maintenanceDuration.WithLabelValues(jobID), duration)
	if result == "success" {
		module.metrics.maintenanceLastRun.WithLabelValues(jobID).Set(float64(time.Now().Unix()))
	}
	module.stats.maintenanceEntry(jobID).record(result, strings.TrimSpace(message), duration)
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}

func sanitizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if path == "/" {
		return "root"
	}
	path = strings.Trim(path, "/")
	return strings.ReplaceAll(path, " ", "_")
}
