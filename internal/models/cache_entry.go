package models

import (
	"time"

	"gorm.io/datatypes"
)

// CacheEntry is a cached list page or item stored by the SQL cache driver. Value holds the
// serialised {result, meta} payload.
type CacheEntry struct {
	Key       string         `gorm:"primaryKey;column:cache_key;size:512"`
	Value     datatypes.JSON
	ExpiresAt time.Time      `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
