package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/academia-crecer/academia-api/internal/models"
)

func setupConfigDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SiteConfig{}))
	return db
}

func TestSiteConfigSaveIsUpsertOnFixedRow(t *testing.T) {
	db := setupConfigDB(t)
	repo := NewSiteConfigRepository(db)
	ctx := context.Background()

	first := models.SiteConfig{
		WelcomeMessage: "Bienvenidos a la academia",
		HeroImages:     datatypes.NewJSONSlice([]string{"hero1.jpg"}),
	}
	require.NoError(t, repo.Save(ctx, &first))

	second := models.SiteConfig{
		WelcomeMessage: "Mensaje actualizado",
		HeroImages:     datatypes.NewJSONSlice([]string{"hero1.jpg", "hero2.jpg"}),
	}
	require.NoError(t, repo.Save(ctx, &second))

	loaded, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, models.SiteConfigRowID, loaded.ID)
	require.Equal(t, "Mensaje actualizado", loaded.WelcomeMessage)
	require.Len(t, []string(loaded.HeroImages), 2)

	var count int64
	require.NoError(t, db.Model(&models.SiteConfig{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSiteConfigGetMissingRow(t *testing.T) {
	db := setupConfigDB(t)
	repo := NewSiteConfigRepository(db)

	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
