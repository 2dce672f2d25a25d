package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/academia-crecer/academia-api/internal/config"
	"github.com/academia-crecer/academia-api/internal/handler"
	"github.com/academia-crecer/academia-api/internal/middleware"
	"github.com/academia-crecer/academia-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ScheduleHandler     *handler.ScheduleHandler
	RegistrationHandler *handler.RegistrationHandler
	SiteConfigHandler   *handler.SiteConfigHandler
	AuthHandler         *handler.AuthHandler
	AdminStudentHandler *handler.AdminStudentHandler
	UploadHandler       *handler.UploadHandler
	ActivityHandler     *handler.ActivityHandler
	JWTMiddleware       fiber.Handler
	SessionMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Public surface consumed by the marketing site.
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	if deps.ScheduleHandler != nil {
		deps.ScheduleHandler.Register(api.Group("/schedules"))
	}
	if deps.SiteConfigHandler != nil {
		deps.SiteConfigHandler.RegisterPublic(api.Group("/config"))
	}
	if deps.RegistrationHandler != nil {
		register := api.Group("/register", middleware.RateLimit("public_register", 5, time.Minute))
		deps.RegistrationHandler.RegisterPublic(register)
	}
	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api.Group("/auth"))
	}

	// Back office. Both the signed token and the server-side session flag
	// are required, so logout revokes access immediately.
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}
	sessionMiddleware := deps.SessionMiddleware
	if sessionMiddleware == nil {
		sessionMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	admin := app.Group("/api/admin", jwtMiddleware, sessionMiddleware)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(admin.Group("/auth"))
	}
	if deps.AdminStudentHandler != nil {
		students := admin.Group("/students")
		if deps.RegistrationHandler != nil {
			deps.RegistrationHandler.RegisterAdmin(students)
		}
		deps.AdminStudentHandler.Register(students)
	}
	if deps.SiteConfigHandler != nil {
		deps.SiteConfigHandler.RegisterAdmin(admin.Group("/config"))
	}
	if deps.UploadHandler != nil {
		deps.UploadHandler.Register(admin.Group("/uploads"))
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(admin.Group("/activity"))
	}
}
