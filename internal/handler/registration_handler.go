package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/service"
	"github.com/academia-crecer/academia-api/internal/utils"
)

// RegistrationHandler accepts enrolments from the public landing form and
// the back-office screen.
type RegistrationHandler struct {
	service service.RegistrationService
	logger  zerolog.Logger
}

// NewRegistrationHandler constructs a registration handler.
func NewRegistrationHandler(service service.RegistrationService, logger zerolog.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		service: service,
		logger:  logger.With().Str("component", "registration_handler").Logger(),
	}
}

// RegisterPublic wires the public self-registration route.
func (h *RegistrationHandler) RegisterPublic(router fiber.Router) {
	router.Post("", h.registerPublic)
}

// RegisterAdmin wires the back-office enrolment route.
func (h *RegistrationHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.registerAdmin)
}

func (h *RegistrationHandler) registerPublic(c *fiber.Ctx) error {
	return h.register(c, service.OriginPublic)
}

func (h *RegistrationHandler) registerAdmin(c *fiber.Ctx) error {
	return h.register(c, service.OriginAdmin)
}

func (h *RegistrationHandler) register(c *fiber.Ctx, origin service.Origin) error {
	var payload dto.RegistrationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Register(c.UserContext(), payload, origin)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendValidationError(c, err)
		case errors.Is(err, catalog.ErrScheduleNotFound):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "schedule not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to register student")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register student")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "student registered", response)
}
