package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/academia-crecer/academia-api/internal/models"
)

// SiteConfigRepository persists the singleton site configuration row.
type SiteConfigRepository interface {
	Get(ctx context.Context) (models.SiteConfig, error)
	Save(ctx context.Context, config *models.SiteConfig) error
}

type siteConfigRepository struct {
	db *gorm.DB
}

// NewSiteConfigRepository constructs a repository backed by GORM.
func NewSiteConfigRepository(db *gorm.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

func (r *siteConfigRepository) Get(ctx context.Context) (models.SiteConfig, error) {
	var config models.SiteConfig
	err := r.db.WithContext(ctx).First(&config, "id = ?", models.SiteConfigRowID).Error
	if err != nil {
		return models.SiteConfig{}, err
	}

	return config, nil
}

func (r *siteConfigRepository) Save(ctx context.Context, config *models.SiteConfig) error {
	config.ID = models.SiteConfigRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(config).Error
}
