package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/whopu/challenge/pkg/app/countdown"
)

type countdownHandler struct {
	clock countdown.Clock
}

func NewCountdownHandler(clock countdown.Clock) Handler {
	return &countdownHandler{clock: clock}
}

// Handle @Summary Time left until the challenge starts
// @Tags Landing
// @Produce json
// @Success 200 {object} countdown.Remaining
// @Router /api/countdown [get]
func (h *countdownHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.clock.Remaining())
}
