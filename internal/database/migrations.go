package database

import (
	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Company{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.CacheEntry{},
		&models.SystemSetting{},
	)
}
