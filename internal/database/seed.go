package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/catalog/internal/models"
	"github.com/charlesng35/catalog/pkg/logger"
)

// SeedCatalogSetting marks that the default taxonomy was applied.
const SeedCatalogSetting = "seed.catalog.v1"

type seedCategory struct {
	name          string
	subcategories []string
}

var defaultTaxonomy = []seedCategory{
	{name: "Electronics", subcategories: []string{"Smartphones", "Laptops"}},
	{name: "Clothing", subcategories: []string{"Men's Clothing", "Women's Clothing"}},
	{name: "Home Appliances", subcategories: []string{"Refrigerators", "Washing Machines"}},
	{name: "Books", subcategories: []string{"Fiction", "Non-Fiction"}},
}

// SeedCatalog inserts the default categories and subcategories once per database. The persisted
// marker makes repeated calls, from this or any other process, a no-op; rows are matched by
// name so a partially applied seed is completed rather than duplicated. It reports whether the
// seed ran.
func SeedCatalog(ctx context.Context, db *gorm.DB) (bool, error) {
	applied, err := GetSystemSetting(ctx, db, SeedCatalogSetting)
	if err != nil {
		return false, err
	}
	if applied != "" {
		return false, nil
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range defaultTaxonomy {
			category := models.Category{Name: entry.name, Status: models.StatusActive}
			if err := firstOrCreateByName(tx, &category, entry.name); err != nil {
				return fmt.Errorf("category %q: %w", entry.name, err)
			}

			for _, name := range entry.subcategories {
				categoryID := category.ID
				sub := models.Subcategory{Name: name, Status: models.StatusActive, CategoryID: &categoryID}
				if err := firstOrCreateByName(tx, &sub, name); err != nil {
					return fmt.Errorf("subcategory %q: %w", name, err)
				}
			}
		}
		return UpsertSystemSetting(ctx, tx, SeedCatalogSetting, time.Now().UTC().Format(time.RFC3339))
	})
	if err != nil {
		return false, err
	}

	logger.WithModule("database").Info("catalog seed applied")
	return true, nil
}

func firstOrCreateByName(tx *gorm.DB, dest any, name string) error {
	return tx.Where("name = ?", name).FirstOrCreate(dest).Error
}
