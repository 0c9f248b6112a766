package cache

import (
	"context"
	"errors"
	"time"

	"github.com/muesli/cache2go"
)

// MemoryStore keeps entries in a process-local cache2go table. It suits single-instance
// deployments and tests; entries are not shared between processes.
type MemoryStore struct {
	table *cache2go.CacheTable
}

// cache2go extends an item's lifespan on every access, so the absolute deadline travels with
// the value and is checked on read.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore returns a store over the named cache2go table. Stores sharing a name share
// entries.
func NewMemoryStore(table string) *MemoryStore {
	if table == "" {
		table = "catalog"
	}
	return &MemoryStore{table: cache2go.Cache(table)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	item, err := s.table.Value(key)
	if errors.Is(err, cache2go.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	entry, ok := item.Data().(memoryEntry)
	if !ok {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		_, _ = s.table.Delete(key)
		return nil, false, nil
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	} else {
		ttl = 0
	}
	s.table.Add(key, ttl, entry)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, key := range keys {
		if _, err := s.table.Delete(key); err != nil && !errors.Is(err, cache2go.ErrKeyNotFound) {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// Foreach holds the table's read lock; collect first, delete after.
	var matched []string
	s.table.Foreach(func(key interface{}, _ *cache2go.CacheItem) {
		if k, ok := key.(string); ok && Match(pattern, k) {
			matched = append(matched, k)
		}
	})

	removed := 0
	for _, key := range matched {
		if _, err := s.table.Delete(key); err == nil {
			removed++
		}
	}
	return removed, nil
}

// Flush drops every entry in the table.
func (s *MemoryStore) Flush() {
	s.table.Flush()
}
