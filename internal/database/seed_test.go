package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/catalog/internal/models"
)

func TestSeedCatalogCreatesTaxonomy(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	applied, err := SeedCatalog(context.Background(), db)
	require.NoError(t, err)
	require.True(t, applied)

	var electronics models.Category
	require.NoError(t, db.Take(&electronics, "name = ?", "Electronics").Error)
	require.Equal(t, models.StatusActive, electronics.Status)

	var subs []models.Subcategory
	require.NoError(t, db.Where("category_id = ?", electronics.ID).Order("name").Find(&subs).Error)
	require.Len(t, subs, 2)
	require.Equal(t, "Laptops", subs[0].Name)
	require.Equal(t, "Smartphones", subs[1].Name)

	var subCount int64
	require.NoError(t, db.Model(&models.Subcategory{}).Count(&subCount).Error)
	require.Equal(t, int64(8), subCount)

	marker, err := GetSystemSetting(context.Background(), db, SeedCatalogSetting)
	require.NoError(t, err)
	require.NotEmpty(t, marker)
}

func TestSeedCatalogRunsOnce(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))

	_, err := SeedCatalog(context.Background(), db)
	require.NoError(t, err)

	// Rows removed after seeding must not come back on the next start.
	require.NoError(t, db.Where("name = ?", "Books").Delete(&models.Category{}).Error)

	applied, err := SeedCatalog(context.Background(), db)
	require.NoError(t, err)
	require.False(t, applied)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.Equal(t, int64(3), count)
}

func TestSeedCatalogCompletesPartialSeed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, AutoMigrate(db))
	require.NoError(t, db.Create(&models.Category{Name: "Books", Status: models.StatusActive}).Error)

	applied, err := SeedCatalog(context.Background(), db)
	require.NoError(t, err)
	require.True(t, applied)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", "Books").Count(&count).Error)
	require.Equal(t, int64(1), count)
}
