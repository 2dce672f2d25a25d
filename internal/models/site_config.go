package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteConfigRowID is the fixed identity of the singleton configuration row.
const SiteConfigRowID uint = 1

// AboutImageCount is the fixed arity of the about-section image list.
const AboutImageCount = 4

// Intro slide media kinds.
const (
	SlideKindImage = "image"
	SlideKindVideo = "video"
)

// IntroSlide is one step of the intro portal shown before the landing page.
type IntroSlide struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	DurationMS int    `json:"duration_ms"`
}

// SiteConfig is the singleton content bundle backing the public site:
// hero carousel, about section, welcome text, payment collection details
// and the intro slide deck. Only the settings panel mutates it.
type SiteConfig struct {
	ID             uint                            `gorm:"primaryKey" json:"id"`
	HeroImages     datatypes.JSONSlice[string]     `json:"hero_images"`
	AboutImages    datatypes.JSONSlice[string]     `json:"about_images"`
	WelcomeMessage string                          `gorm:"type:text" json:"welcome_message"`
	LogoURL        string                          `gorm:"size:512" json:"logo_url"`
	Instagram      string                          `gorm:"size:128" json:"instagram"`
	Facebook       string                          `gorm:"size:128" json:"facebook"`
	TikTok         string                          `gorm:"size:128" json:"tiktok"`
	WalletNumber   string                          `gorm:"size:64" json:"wallet_number"`
	WalletName     string                          `gorm:"size:128" json:"wallet_name"`
	BankAccount    string                          `gorm:"size:64" json:"bank_account"`
	BankName       string                          `gorm:"size:128" json:"bank_name"`
	IntroSlides    datatypes.JSONSlice[IntroSlide] `json:"intro_slides"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}

// NormalizeAboutImages pads the about-image list with empty placeholders up
// to the fixed arity. Lists longer than the arity are left untouched; the
// editor validates the cap before the model ever sees excess entries.
func (c *SiteConfig) NormalizeAboutImages() {
	images := []string(c.AboutImages)
	for len(images) < AboutImageCount {
		images = append(images, "")
	}
	c.AboutImages = datatypes.NewJSONSlice(images)
}
