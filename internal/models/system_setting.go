package models

import "time"

// SystemSetting persists installation-wide values that should survive restarts, such as the
// marker recording that the catalog seed was applied.
type SystemSetting struct {
	Key       string    `gorm:"primaryKey;column:setting_key;size:128"`
	Value     string    `gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
