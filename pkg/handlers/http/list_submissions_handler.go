package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/homework"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	"github.com/whopu/challenge/pkg/handlers/http/response"
)

type listSubmissionsHandler struct {
	logger   *logrus.Logger
	reviewer homework.Reviewer
}

func NewListSubmissionsHandler(logger *logrus.Logger, reviewer homework.Reviewer) Handler {
	return &listSubmissionsHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary List submissions
// @Description Newest first, optionally filtered by day and status
// @Tags Admin
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Param day query int false "Day number (1-5)"
// @Param status query string false "Review status"
// @Param offset query int false "Offset"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} response.SubmissionListOutput
// @Failure 400 {object} map[string]interface{}
// @Router /api/admin/submissions [get]
func (h *listSubmissionsHandler) Handle(c *fiber.Ctx) error {
	filter, err := request.ListSubmissionsQuery{
		Day:    c.Query("day"),
		Status: c.Query("status"),
		Offset: c.Query("offset"),
		Limit:  c.Query("limit"),
	}.Filter()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	subs, err := h.reviewer.List(c.UserContext(), filter)
	if err != nil {
		h.logger.WithError(err).Error("failed to list submissions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list submissions"})
	}

	return c.Status(fiber.StatusOK).JSON(response.SubmissionListOutput{
		Items:  subs,
		Count:  len(subs),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}
