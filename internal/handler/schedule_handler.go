package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/utils"
)

// ScheduleHandler serves the compiled-in class schedule catalog.
type ScheduleHandler struct{}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler() *ScheduleHandler {
	return &ScheduleHandler{}
}

// Register wires schedule routes.
func (h *ScheduleHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *ScheduleHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "class schedules", catalog.All())
}

func (h *ScheduleHandler) get(c *fiber.Ctx) error {
	schedule, err := catalog.Lookup(c.Params("id"))
	if err != nil {
		if errors.Is(err, catalog.ErrScheduleNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "schedule not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load schedule")
	}

	return utils.SendSuccess(c, "class schedule", schedule)
}
