package dto

import (
	"time"

	"github.com/academia-crecer/academia-api/internal/models"
)

// IntroSlideDTO mirrors a slide of the intro portal deck.
type IntroSlideDTO struct {
	ID         string `json:"id" validate:"omitempty,max=64"`
	Kind       string `json:"kind" validate:"required,oneof=image video"`
	URL        string `json:"url" validate:"required,url,max=512"`
	Title      string `json:"title" validate:"omitempty,max=128"`
	Subtitle   string `json:"subtitle" validate:"omitempty,max=255"`
	DurationMS int    `json:"duration_ms" validate:"required,gt=0"`
}

// SiteConfigResponse is the full content bundle served to the public site.
type SiteConfigResponse struct {
	HeroImages     []string        `json:"hero_images"`
	AboutImages    []string        `json:"about_images"`
	WelcomeMessage string          `json:"welcome_message"`
	LogoURL        string          `json:"logo_url"`
	Instagram      string          `json:"instagram"`
	Facebook       string          `json:"facebook"`
	TikTok         string          `json:"tiktok"`
	WalletNumber   string          `json:"wallet_number"`
	WalletName     string          `json:"wallet_name"`
	BankAccount    string          `json:"bank_account"`
	BankName       string          `json:"bank_name"`
	IntroSlides    []IntroSlideDTO `json:"intro_slides"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// NewSiteConfigResponse maps the stored singleton to its API representation.
func NewSiteConfigResponse(config models.SiteConfig) SiteConfigResponse {
	response := SiteConfigResponse{
		HeroImages:     append([]string{}, config.HeroImages...),
		AboutImages:    append([]string{}, config.AboutImages...),
		WelcomeMessage: config.WelcomeMessage,
		LogoURL:        config.LogoURL,
		Instagram:      config.Instagram,
		Facebook:       config.Facebook,
		TikTok:         config.TikTok,
		WalletNumber:   config.WalletNumber,
		WalletName:     config.WalletName,
		BankAccount:    config.BankAccount,
		BankName:       config.BankName,
		UpdatedAt:      config.UpdatedAt,
	}

	for _, slide := range config.IntroSlides {
		response.IntroSlides = append(response.IntroSlides, IntroSlideDTO{
			ID:         slide.ID,
			Kind:       slide.Kind,
			URL:        slide.URL,
			Title:      slide.Title,
			Subtitle:   slide.Subtitle,
			DurationMS: slide.DurationMS,
		})
	}

	return response
}

// SiteConfigUpdateRequest is the settings-panel save payload. About images
// are capped at the fixed arity; shorter lists are padded server-side.
type SiteConfigUpdateRequest struct {
	HeroImages     []string        `json:"hero_images" validate:"omitempty,dive,max=512"`
	AboutImages    []string        `json:"about_images" validate:"omitempty,max=4,dive,max=512"`
	WelcomeMessage string          `json:"welcome_message" validate:"omitempty,max=4000"`
	LogoURL        string          `json:"logo_url" validate:"omitempty,url,max=512"`
	Instagram      string          `json:"instagram" validate:"omitempty,max=128"`
	Facebook       string          `json:"facebook" validate:"omitempty,max=128"`
	TikTok         string          `json:"tiktok" validate:"omitempty,max=128"`
	WalletNumber   string          `json:"wallet_number" validate:"omitempty,max=64"`
	WalletName     string          `json:"wallet_name" validate:"omitempty,max=128"`
	BankAccount    string          `json:"bank_account" validate:"omitempty,max=64"`
	BankName       string          `json:"bank_name" validate:"omitempty,max=128"`
	IntroSlides    []IntroSlideDTO `json:"intro_slides" validate:"omitempty,dive"`
}

// SiteConfigSaveResponse reports whether the remote store confirmed the save.
// Synced=false means the local save stands while a reconciliation event was
// emitted for the divergence.
type SiteConfigSaveResponse struct {
	Config SiteConfigResponse `json:"config"`
	Synced bool               `json:"synced"`
}
