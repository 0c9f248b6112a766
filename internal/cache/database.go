package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/charlesng35/catalog/internal/models"
)

const deleteBatchSize = 200

// DatabaseStore implements Store on the primary SQL database. It backs deployments without
// Redis and takes over when Redis is unreachable at start-up.
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore constructs a database-backed Store.
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	if db == nil {
		return nil
	}
	return &DatabaseStore{db: db}
}

// Set upserts the value for a given key with expiry.
func (s *DatabaseStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if s == nil {
		return errors.New("cache: database store not initialised")
	}

	entry := models.CacheEntry{
		Key:   key,
		Value: datatypes.JSON(value),
	}
	if ttl > 0 {
		entry.ExpiresAt = time.Now().Add(ttl)
	}

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cache_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).Create(&entry).Error
}

// Get retrieves a value by key. Expired rows read as a miss and are removed.
func (s *DatabaseStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s == nil {
		return nil, false, errors.New("cache: database store not initialised")
	}

	var entry models.CacheEntry
	err := s.db.WithContext(ctx).Take(&entry, "cache_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = s.Delete(ctx, key)
		return nil, false, nil
	}

	return []byte(entry.Value), true, nil
}

// Delete removes keys from the store.
func (s *DatabaseStore) Delete(ctx context.Context, keys ...string) error {
	if s == nil {
		return errors.New("cache: database store not initialised")
	}
	if len(keys) == 0 {
		return nil
	}

	return s.db.WithContext(ctx).Where("cache_key IN ?", keys).Delete(&models.CacheEntry{}).Error
}

// DeleteByPattern narrows candidates with a LIKE on the pattern's literal prefix and applies the
// full glob in Go before deleting.
func (s *DatabaseStore) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if s == nil {
		return 0, errors.New("cache: database store not initialised")
	}

	like, exact := likePrefix(pattern)
	if exact {
		res := s.db.WithContext(ctx).Where("cache_key = ?", like).Delete(&models.CacheEntry{})
		return int(res.RowsAffected), res.Error
	}

	var candidates []string
	if err := s.db.WithContext(ctx).
		Model(&models.CacheEntry{}).
		Where("cache_key LIKE ? ESCAPE '"+likeEscape+"'", like).
		Pluck("cache_key", &candidates).Error; err != nil {
		return 0, err
	}

	matched := make([]string, 0, len(candidates))
	for _, key := range candidates {
		if Match(pattern, key) {
			matched = append(matched, key)
		}
	}

	removed := 0
	for start := 0; start < len(matched); start += deleteBatchSize {
		end := min(start+deleteBatchSize, len(matched))
		res := s.db.WithContext(ctx).Where("cache_key IN ?", matched[start:end]).Delete(&models.CacheEntry{})
		if res.Error != nil {
			return removed, res.Error
		}
		removed += int(res.RowsAffected)
	}
	return removed, nil
}

// PurgeExpired deletes rows whose expiry lies before now. Rows without expiry are kept.
func (s *DatabaseStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if s == nil {
		return 0, errors.New("cache: database store not initialised")
	}

	res := s.db.WithContext(ctx).
		Where("expires_at > ? AND expires_at < ?", time.Time{}, now).
		Delete(&models.CacheEntry{})
	return res.RowsAffected, res.Error
}

// Ping checks the underlying connection.
func (s *DatabaseStore) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("cache: database store not initialised")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
