package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/rsvp"
	"github.com/whopu/challenge/pkg/handlers/http/response"
)

type getRSVPHandler struct {
	logger  *logrus.Logger
	counter rsvp.Counter
}

func NewGetRSVPHandler(logger *logrus.Logger, counter rsvp.Counter) Handler {
	return &getRSVPHandler{
		logger:  logger,
		counter: counter,
	}
}

// Handle @Summary Get RSVP count
// @Tags RSVP
// @Produce json
// @Success 200 {object} response.RSVPResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/rsvp [get]
func (h *getRSVPHandler) Handle(c *fiber.Ctx) error {
	n, err := h.counter.Count(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("failed to read rsvp count")
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
			Message: response.MsgRSVPFailed,
		})
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(fiber.StatusOK).JSON(response.RSVPResponse{Count: n})
}
