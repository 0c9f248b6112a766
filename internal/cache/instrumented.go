package cache

import (
	"context"
	"time"

	"github.com/charlesng35/catalog/internal/monitoring"
)

// Instrument wraps store so every round trip is observed as
// catalog_cache_store_latency_seconds{driver,operation}.
func Instrument(store Store, driver string) Store {
	if store == nil {
		return nil
	}
	return &instrumentedStore{next: store, driver: driver}
}

type instrumentedStore struct {
	next   Store
	driver string
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	defer s.observe("get", time.Now())
	return s.next.Get(ctx, key)
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	defer s.observe("set", time.Now())
	return s.next.Set(ctx, key, value, ttl)
}

func (s *instrumentedStore) Delete(ctx context.Context, keys ...string) error {
	defer s.observe("delete", time.Now())
	return s.next.Delete(ctx, keys...)
}

func (s *instrumentedStore) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	defer s.observe("delete_pattern", time.Now())
	return s.next.DeleteByPattern(ctx, pattern)
}

// Ping forwards to the wrapped store. In-process stores are always reachable.
func (s *instrumentedStore) Ping(ctx context.Context) error {
	if pinger, ok := s.next.(Pinger); ok {
		return pinger.Ping(ctx)
	}
	return ctx.Err()
}

// Unwrap returns the wrapped store.
func (s *instrumentedStore) Unwrap() Store {
	return s.next
}

func (s *instrumentedStore) observe(operation string, start time.Time) {
	monitoring.ObserveCacheStore(s.driver, operation, time.Since(start))
}
