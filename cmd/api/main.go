package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/config"
	"github.com/academia-crecer/academia-api/internal/database"
	"github.com/academia-crecer/academia-api/internal/events"
	"github.com/academia-crecer/academia-api/internal/gateway"
	"github.com/academia-crecer/academia-api/internal/handler"
	"github.com/academia-crecer/academia-api/internal/middleware"
	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/notify"
	"github.com/academia-crecer/academia-api/internal/repository"
	"github.com/academia-crecer/academia-api/internal/router"
	"github.com/academia-crecer/academia-api/internal/service"
	cloud "github.com/academia-crecer/academia-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Student{},
		&models.PaymentRecord{},
		&models.AttendanceRecord{},
		&models.SiteConfig{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		log.Fatalf("failed to connect to nats: %v", err)
	}
	if natsConn != nil {
		defer natsConn.Close()
	}

	var remote service.ConfigGateway
	if cfg.GatewayBaseURL != "" {
		client, err := gateway.New(gateway.Config{
			BaseURL:  cfg.GatewayBaseURL,
			APIKey:   cfg.GatewayAPIKey,
			Token:    cfg.GatewayToken,
			Resource: cfg.GatewayResource,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create config gateway: %v", err)
		}
		remote = client
	}

	var uploader service.FileStorage
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	publisher := events.NewNATSPublisher(natsConn, logger)
	notifier := notify.NewWhatsAppNotifier(cfg.WhatsAppNumber, logger)

	studentRepo := repository.NewStudentRepository(db)
	siteConfigRepo := repository.NewSiteConfigRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	registrationService := service.NewRegistrationService(studentRepo, validate, notifier, activityService, logger)
	rosterService := service.NewRosterService(studentRepo, validate, activityService, logger)
	siteConfigService := service.NewSiteConfigService(siteConfigRepo, remote, redisClient, publisher, activityService, validate, cfg.ConfigCacheTTL, logger)
	authService := service.NewAuthService(service.NewSharedSecretVerifier(cfg.AdminSecret), redisClient, activityService, validate, cfg.JWTSecret, cfg.SessionTTL, logger)

	deps := router.Dependencies{
		ScheduleHandler:     handler.NewScheduleHandler(),
		RegistrationHandler: handler.NewRegistrationHandler(registrationService, logger),
		SiteConfigHandler:   handler.NewSiteConfigHandler(siteConfigService, logger),
		AuthHandler:         handler.NewAuthHandler(authService, logger),
		AdminStudentHandler: handler.NewAdminStudentHandler(rosterService, logger),
		ActivityHandler:     handler.NewActivityHandler(activityService, logger),
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
		SessionMiddleware:   middleware.SessionRequired(redisClient),
	}
	if uploader != nil {
		uploadService := service.NewUploadService(uploader, activityService, 25, logger)
		deps.UploadHandler = handler.NewUploadHandler(uploadService, logger)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, CORSOrigins: cfg.CORSOrigins})
	router.Register(app, cfg, deps)

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
