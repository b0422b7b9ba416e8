package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/homework"
	"github.com/whopu/challenge/pkg/domain"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	"github.com/whopu/challenge/pkg/middleware"
)

type updateSubmissionStatusHandler struct {
	logger   *logrus.Logger
	reviewer homework.Reviewer
}

func NewUpdateSubmissionStatusHandler(logger *logrus.Logger, reviewer homework.Reviewer) Handler {
	return &updateSubmissionStatusHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary Update the review status of a submission
// @Tags Admin
// @Param Authorization header string true "Authorization token"
// @Accept json
// @Produce json
// @Param submission_id path string true "Submission ID"
// @Param request body request.UpdateStatusRequest true "New status"
// @Success 200 {object} submission.Submission
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin/submissions/{submission_id}/status [put]
func (h *updateSubmissionStatusHandler) Handle(c *fiber.Ctx) error {
	id := c.Params("submission_id")

	var req request.UpdateStatusRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	status, err := req.Validate()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sub, err := h.reviewer.SetStatus(c.UserContext(), id, status, middleware.AdminSubject(c))
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "submission not found"})
		}
		h.logger.WithError(err).WithField("submissionId", id).Error("failed to update submission status")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update submission"})
	}
	return c.Status(fiber.StatusOK).JSON(sub)
}
