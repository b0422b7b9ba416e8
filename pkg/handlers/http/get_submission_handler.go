package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/homework"
	"github.com/whopu/challenge/pkg/domain"
)

type getSubmissionHandler struct {
	logger   *logrus.Logger
	reviewer homework.Reviewer
}

func NewGetSubmissionHandler(logger *logrus.Logger, reviewer homework.Reviewer) Handler {
	return &getSubmissionHandler{
		logger:   logger,
		reviewer: reviewer,
	}
}

// Handle @Summary Retrieve a submission by ID
// @Tags Admin
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Param submission_id path string true "Submission ID"
// @Success 200 {object} submission.Submission
// @Failure 404 {object} map[string]interface{}
// @Router /api/admin/submissions/{submission_id} [get]
func (h *getSubmissionHandler) Handle(c *fiber.Ctx) error {
	id := c.Params("submission_id")
	sub, err := h.reviewer.Get(c.UserContext(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "submission not found"})
		}
		h.logger.WithError(err).WithField("submissionId", id).Error("failed to get submission")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to get submission"})
	}
	return c.Status(fiber.StatusOK).JSON(sub)
}
