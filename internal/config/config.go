package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	CORSOrigins            string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	JWTSecret              string
	AdminSecret            string
	SessionTTL             time.Duration
	ConfigCacheTTL         time.Duration
	GatewayBaseURL         string
	GatewayAPIKey          string
	GatewayToken           string
	GatewayResource        string
	WhatsAppNumber         string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ACADEMIA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Academia API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cors.origins", "*")
	v.SetDefault("session.ttl", "12h")
	v.SetDefault("config.cache_ttl", "5m")
	v.SetDefault("gateway.resource", "site_config")
	v.SetDefault("cloudinary.folder", "academia/site")

	sessionTTL, err := time.ParseDuration(v.GetString("session.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("config.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid config cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		CORSOrigins:            v.GetString("cors.origins"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		AdminSecret:            v.GetString("admin.secret"),
		SessionTTL:             sessionTTL,
		ConfigCacheTTL:         cacheTTL,
		GatewayBaseURL:         v.GetString("gateway.base_url"),
		GatewayAPIKey:          v.GetString("gateway.api_key"),
		GatewayToken:           v.GetString("gateway.token"),
		GatewayResource:        v.GetString("gateway.resource"),
		WhatsAppNumber:         v.GetString("whatsapp.number"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AdminSecret == "" {
		return Config{}, fmt.Errorf("admin secret must be provided")
	}

	return cfg, nil
}
