package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/middleware"
	"github.com/academia-crecer/academia-api/internal/service"
	"github.com/academia-crecer/academia-api/internal/utils"
)

// AuthHandler manages the back-office session lifecycle.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic wires the login route.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/login", h.login)
}

// RegisterProtected wires the routes that require an active session token.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/session", h.session)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
		}
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	return utils.SendSuccess(c, "session opened", response)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.UserContext(), middleware.SessionID(c)); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("logout failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to close session")
	}

	return utils.SendSuccess(c, "session closed", nil)
}

func (h *AuthHandler) session(c *fiber.Ctx) error {
	response, err := h.service.Session(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("session check failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to check session")
	}

	return utils.SendSuccess(c, "session status", response)
}
