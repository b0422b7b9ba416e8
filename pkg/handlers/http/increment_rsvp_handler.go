package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/rsvp"
	"github.com/whopu/challenge/pkg/handlers/http/response"
)

type incrementRSVPHandler struct {
	logger  *logrus.Logger
	counter rsvp.Counter
}

func NewIncrementRSVPHandler(logger *logrus.Logger, counter rsvp.Counter) Handler {
	return &incrementRSVPHandler{
		logger:  logger,
		counter: counter,
	}
}

// Handle @Summary Increment RSVP count
// @Tags RSVP
// @Produce json
// @Success 200 {object} response.RSVPResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/rsvp [post]
func (h *incrementRSVPHandler) Handle(c *fiber.Ctx) error {
	n, err := h.counter.Increment(c.UserContext(), rsvp.SourceForm)
	if err != nil {
		h.logger.WithError(err).Error("failed to increment rsvp count")
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
			Message: response.MsgRSVPFailed,
		})
	}
	return c.Status(fiber.StatusOK).JSON(response.RSVPResponse{Count: n, Success: true})
}
