package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/service"
	"github.com/academia-crecer/academia-api/internal/utils"
)

// SiteConfigHandler serves the public content bundle and the settings-panel
// save endpoints.
type SiteConfigHandler struct {
	service service.SiteConfigService
	logger  zerolog.Logger
}

// NewSiteConfigHandler constructs a site config handler.
func NewSiteConfigHandler(service service.SiteConfigService, logger zerolog.Logger) *SiteConfigHandler {
	return &SiteConfigHandler{
		service: service,
		logger:  logger.With().Str("component", "site_config_handler").Logger(),
	}
}

// RegisterPublic wires the public read route.
func (h *SiteConfigHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.get)
}

// RegisterAdmin wires the settings-panel routes.
func (h *SiteConfigHandler) RegisterAdmin(router fiber.Router) {
	router.Get("", h.get)
	router.Put("", h.save)
	router.Put("/about-images/:index", h.setAboutImage)
}

func (h *SiteConfigHandler) get(c *fiber.Ctx) error {
	response, err := h.service.Get(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load site config")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load site configuration")
	}

	return utils.SendSuccess(c, "site configuration", response)
}

func (h *SiteConfigHandler) save(c *fiber.Ctx) error {
	var payload dto.SiteConfigUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Set(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendValidationError(c, err)
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to save site config")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save site configuration")
	}

	message := "site configuration saved"
	if !response.Synced {
		message = "site configuration saved locally, remote sync pending"
	}

	return utils.SendSuccess(c, message, response)
}

func (h *SiteConfigHandler) setAboutImage(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid image index")
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.SetAboutImage(c.UserContext(), index, payload.URL)
	if err != nil {
		if errors.Is(err, service.ErrAboutImageIndex) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid image index")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to set about image")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save site configuration")
	}

	return utils.SendSuccess(c, "about image updated", response)
}
