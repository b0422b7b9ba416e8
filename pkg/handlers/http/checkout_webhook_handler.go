package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	appcheckout "github.com/whopu/challenge/pkg/app/checkout"
	"github.com/whopu/challenge/pkg/domain/checkout"
	"github.com/whopu/challenge/pkg/handlers/http/response"
)

type checkoutWebhookHandler struct {
	logger    *logrus.Logger
	processor appcheckout.Processor
}

func NewCheckoutWebhookHandler(logger *logrus.Logger, processor appcheckout.Processor) Handler {
	return &checkoutWebhookHandler{
		logger:    logger,
		processor: processor,
	}
}

// Handle @Summary Checkout completion webhook
// @Description Counts one RSVP per completed checkout event. The raw body must be signed.
// @Tags Checkout
// @Accept json
// @Produce json
// @Success 200 {object} response.CheckoutResponse
// @Failure 400 {object} map[string]interface{} "Unparseable payload"
// @Failure 401 {object} map[string]interface{} "Invalid signature"
// @Router /api/webhooks/checkout [post]
func (h *checkoutWebhookHandler) Handle(c *fiber.Ctx) error {
	signature := c.Get(h.processor.SignatureHeader())
	res, err := h.processor.Process(c.UserContext(), c.Body(), signature)
	switch {
	case errors.Is(err, checkout.ErrInvalidSignature):
		h.logger.WithField("ip", c.IP()).Warn("checkout webhook with invalid signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid signature"})
	case errors.Is(err, checkout.ErrInvalidPayload):
		h.logger.WithError(err).Warn("unparseable checkout webhook")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payload"})
	case err != nil:
		h.logger.WithError(err).Error("failed to process checkout webhook")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to process webhook"})
	}

	out := response.CheckoutResponse{Received: true, Counted: res.Counted}
	if res.Counted {
		out.Count = &res.Count
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
