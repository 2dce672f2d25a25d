package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/events"
	"github.com/academia-crecer/academia-api/internal/gateway"
	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/observability"
	"github.com/academia-crecer/academia-api/internal/repository"
)

// ReconcileSubject is the event subject announcing local/remote divergence
// after a config save whose remote push failed.
const ReconcileSubject = "academia.config.reconcile"

const configCacheKey = "site_config:v1"

// ErrAboutImageIndex indicates an about-image slot outside the fixed arity.
var ErrAboutImageIndex = errors.New("about image index out of range")

// ConfigGateway is the remote chokepoint the store syncs through.
type ConfigGateway interface {
	Fetch(ctx context.Context) (gateway.Row, error)
	Push(ctx context.Context, payload interface{}) (gateway.Row, error)
}

// SiteConfigService mirrors site content between the local row, the remote
// store and the cache. It is never fully unpopulated: with no local and no
// remote state it serves the compiled-in defaults.
type SiteConfigService interface {
	Get(ctx context.Context) (dto.SiteConfigResponse, error)
	Set(ctx context.Context, req dto.SiteConfigUpdateRequest) (dto.SiteConfigSaveResponse, error)
	SetAboutImage(ctx context.Context, index int, url string) (dto.SiteConfigSaveResponse, error)
}

type siteConfigService struct {
	repo      repository.SiteConfigRepository
	remote    ConfigGateway
	cache     *redis.Client
	publisher events.Publisher
	activity  ActivityRecorder
	validator *validator.Validate
	policy    *bluemonday.Policy
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewSiteConfigService constructs the config store.
func NewSiteConfigService(repo repository.SiteConfigRepository, remote ConfigGateway, cache *redis.Client, publisher events.Publisher, activity ActivityRecorder, validate *validator.Validate, ttl time.Duration, logger zerolog.Logger) SiteConfigService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	policy := bluemonday.UGCPolicy()
	policy.AllowElements("p", "strong", "em", "br", "ul", "ol", "li")

	return &siteConfigService{
		repo:      repo,
		remote:    remote,
		cache:     cache,
		publisher: publisher,
		activity:  activity,
		validator: validate,
		policy:    policy,
		ttl:       ttl,
		logger:    logger.With().Str("component", "site_config_service").Logger(),
	}
}

func (s *siteConfigService) Get(ctx context.Context) (dto.SiteConfigResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, configCacheKey).Result(); err == nil && cached != "" {
			var config models.SiteConfig
			if err := json.Unmarshal([]byte(cached), &config); err == nil {
				return dto.NewSiteConfigResponse(config), nil
			}
		}
	}

	config, err := s.load(ctx)
	if err != nil {
		return dto.SiteConfigResponse{}, err
	}

	s.cacheConfig(ctx, config)

	return dto.NewSiteConfigResponse(config), nil
}

// load resolves the authoritative bundle: local row first, then the remote
// store, then the compiled-in defaults.
func (s *siteConfigService) load(ctx context.Context) (models.SiteConfig, error) {
	config, err := s.repo.Get(ctx)
	if err == nil {
		config.NormalizeAboutImages()
		return config, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SiteConfig{}, fmt.Errorf("load site config: %w", err)
	}

	if s.remote != nil {
		row, fetchErr := s.remote.Fetch(ctx)
		if fetchErr != nil {
			s.logger.Warn().Err(fetchErr).Msg("remote config fetch failed, serving defaults")
		} else if row != nil {
			if remote, decodeErr := configFromRow(row); decodeErr == nil {
				remote.NormalizeAboutImages()
				if saveErr := s.repo.Save(ctx, &remote); saveErr != nil {
					s.logger.Warn().Err(saveErr).Msg("failed to persist remote config locally")
				}
				return remote, nil
			}
		}
	}

	defaults := DefaultSiteConfig()
	return defaults, nil
}

func (s *siteConfigService) Set(ctx context.Context, req dto.SiteConfigUpdateRequest) (dto.SiteConfigSaveResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.SiteConfigSaveResponse{}, err
	}

	config := s.buildConfig(req)

	return s.persist(ctx, config)
}

// SetAboutImage replaces a single about-section slot, padding shorter lists
// with empty placeholders up to the fixed arity first.
func (s *siteConfigService) SetAboutImage(ctx context.Context, index int, url string) (dto.SiteConfigSaveResponse, error) {
	if index < 0 || index >= models.AboutImageCount {
		return dto.SiteConfigSaveResponse{}, ErrAboutImageIndex
	}

	config, err := s.load(ctx)
	if err != nil {
		return dto.SiteConfigSaveResponse{}, err
	}

	config.NormalizeAboutImages()
	images := []string(config.AboutImages)
	images[index] = strings.TrimSpace(url)
	config.AboutImages = datatypes.NewJSONSlice(images)

	return s.persist(ctx, config)
}

func (s *siteConfigService) persist(ctx context.Context, config models.SiteConfig) (dto.SiteConfigSaveResponse, error) {
	config.NormalizeAboutImages()
	config.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, &config); err != nil {
		observability.ConfigSaves().WithLabelValues("error").Inc()
		return dto.SiteConfigSaveResponse{}, fmt.Errorf("save site config: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, configCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate config cache")
		}
	}

	synced := s.pushRemote(ctx, config)

	outcome := "synced"
	if !synced {
		outcome = "local_only"
	}
	observability.ConfigSaves().WithLabelValues(outcome).Inc()

	if s.activity != nil {
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "config.saved",
			EntityType: "site_config",
			Metadata:   map[string]interface{}{"synced": synced},
		})
	}

	return dto.SiteConfigSaveResponse{
		Config: dto.NewSiteConfigResponse(config),
		Synced: synced,
	}, nil
}

// pushRemote mirrors the saved bundle to the remote store. A failed push
// leaves the local save standing; the divergence is made observable through
// a reconciliation event and the divergence gauge instead of being silent.
func (s *siteConfigService) pushRemote(ctx context.Context, config models.SiteConfig) bool {
	if s.remote == nil {
		return false
	}

	payload, err := rowFromConfig(config)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode config for remote push")
		return false
	}

	if _, err := s.remote.Push(ctx, payload); err != nil {
		observability.ConfigDivergence().Set(1)
		s.logger.Warn().Err(err).Msg("remote config push failed, emitting reconciliation event")

		if s.publisher != nil {
			event := map[string]interface{}{
				"subject":    "site_config",
				"updated_at": config.UpdatedAt,
				"reason":     err.Error(),
			}
			if publishErr := s.publisher.Publish(ReconcileSubject, event); publishErr != nil {
				s.logger.Error().Err(publishErr).Msg("failed to publish reconciliation event")
			}
		}

		return false
	}

	observability.ConfigDivergence().Set(0)
	return true
}

func (s *siteConfigService) cacheConfig(ctx context.Context, config models.SiteConfig) {
	if s.cache == nil {
		return
	}
	if payload, err := json.Marshal(config); err == nil {
		if err := s.cache.Set(ctx, configCacheKey, payload, s.ttl).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache site config")
		}
	}
}

func (s *siteConfigService) buildConfig(req dto.SiteConfigUpdateRequest) models.SiteConfig {
	config := models.SiteConfig{
		HeroImages:     datatypes.NewJSONSlice(trimAll(req.HeroImages)),
		AboutImages:    datatypes.NewJSONSlice(trimAll(req.AboutImages)),
		WelcomeMessage: s.policy.Sanitize(strings.TrimSpace(req.WelcomeMessage)),
		LogoURL:        strings.TrimSpace(req.LogoURL),
		Instagram:      strings.TrimSpace(req.Instagram),
		Facebook:       strings.TrimSpace(req.Facebook),
		TikTok:         strings.TrimSpace(req.TikTok),
		WalletNumber:   strings.TrimSpace(req.WalletNumber),
		WalletName:     strings.TrimSpace(req.WalletName),
		BankAccount:    strings.TrimSpace(req.BankAccount),
		BankName:       strings.TrimSpace(req.BankName),
	}

	slides := make([]models.IntroSlide, 0, len(req.IntroSlides))
	for i, slide := range req.IntroSlides {
		id := strings.TrimSpace(slide.ID)
		if id == "" {
			id = fmt.Sprintf("slide-%d", i+1)
		}
		slides = append(slides, models.IntroSlide{
			ID:         id,
			Kind:       slide.Kind,
			URL:        strings.TrimSpace(slide.URL),
			Title:      strings.TrimSpace(slide.Title),
			Subtitle:   strings.TrimSpace(slide.Subtitle),
			DurationMS: slide.DurationMS,
		})
	}
	config.IntroSlides = datatypes.NewJSONSlice(slides)

	return config
}

func configFromRow(row gateway.Row) (models.SiteConfig, error) {
	encoded, err := json.Marshal(row)
	if err != nil {
		return models.SiteConfig{}, fmt.Errorf("encode remote row: %w", err)
	}

	var config models.SiteConfig
	if err := json.Unmarshal(encoded, &config); err != nil {
		return models.SiteConfig{}, fmt.Errorf("decode remote row: %w", err)
	}

	return config, nil
}

func rowFromConfig(config models.SiteConfig) (map[string]interface{}, error) {
	encoded, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}

	var row map[string]interface{}
	if err := json.Unmarshal(encoded, &row); err != nil {
		return nil, err
	}

	return row, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.TrimSpace(value))
	}
	return out
}

// DefaultSiteConfig is the compiled-in content bundle served when neither
// the local row nor the remote store holds state.
func DefaultSiteConfig() models.SiteConfig {
	return models.SiteConfig{
		ID: models.SiteConfigRowID,
		HeroImages: datatypes.NewJSONSlice([]string{
			"https://res.cloudinary.com/academia-crecer/image/upload/site/hero-entrenamiento.jpg",
			"https://res.cloudinary.com/academia-crecer/image/upload/site/hero-equipo.jpg",
			"https://res.cloudinary.com/academia-crecer/image/upload/site/hero-campeonato.jpg",
		}),
		AboutImages: datatypes.NewJSONSlice([]string{
			"https://res.cloudinary.com/academia-crecer/image/upload/site/about-cancha.jpg",
			"https://res.cloudinary.com/academia-crecer/image/upload/site/about-entrenadores.jpg",
			"https://res.cloudinary.com/academia-crecer/image/upload/site/about-categorias.jpg",
			"https://res.cloudinary.com/academia-crecer/image/upload/site/about-familia.jpg",
		}),
		WelcomeMessage: "Bienvenidos a Academia Crecer: formación deportiva y valores para todas las edades.",
		LogoURL:        "https://res.cloudinary.com/academia-crecer/image/upload/site/logo.png",
		Instagram:      "@academiacrecer",
		Facebook:       "academiacrecer",
		WalletNumber:   "987654321",
		WalletName:     "Academia Crecer",
		BankAccount:    "0011-0057-0200334455",
		BankName:       "Banco Continental",
		IntroSlides: datatypes.NewJSONSlice([]models.IntroSlide{
			{
				ID:         "slide-1",
				Kind:       models.SlideKindImage,
				URL:        "https://res.cloudinary.com/academia-crecer/image/upload/site/intro-bienvenida.jpg",
				Title:      "Academia Crecer",
				Subtitle:   "Donde nacen los campeones",
				DurationMS: 4000,
			},
			{
				ID:         "slide-2",
				Kind:       models.SlideKindVideo,
				URL:        "https://res.cloudinary.com/academia-crecer/video/upload/site/intro-entrenamiento.mp4",
				Title:      "Entrena con nosotros",
				Subtitle:   "Categorías desde los 3 años",
				DurationMS: 8000,
			},
		}),
	}
}
