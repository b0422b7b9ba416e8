package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/homework"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	"github.com/whopu/challenge/pkg/handlers/http/response"
	"github.com/whopu/challenge/pkg/utils"
)

type submitHomeworkHandler struct {
	logger     *logrus.Logger
	submitter  homework.Submitter
	defaultDay int
	newForm    func() request.HomeworkForm
}

// NewSubmitHomeworkHandler serves one homework route. newForm returns an
// empty form of the kind the route accepts.
func NewSubmitHomeworkHandler(
	logger *logrus.Logger,
	submitter homework.Submitter,
	defaultDay int,
	newForm func() request.HomeworkForm,
) Handler {
	return &submitHomeworkHandler{
		logger:     logger,
		submitter:  submitter,
		defaultDay: defaultDay,
		newForm:    newForm,
	}
}

// Handle @Summary Submit homework
// @Description Validates a homework form and records the submission. Day 5 profile submissions complete the challenge.
// @Tags Homework
// @Accept json
// @Produce json
// @Param request body request.WorksheetSubmissionRequest true "Homework form"
// @Success 200 {object} response.SubmitResponse "Submission accepted"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 429 {object} response.ErrorResponse "Too many submissions"
// @Failure 500 {object} response.ErrorResponse "Unexpected error"
// @Router /api/homework/submit [post]
// @Router /api/homework/submit-day2 [post]
// @Router /api/homework/submit-day3 [post]
// @Router /api/homework/submit-day4 [post]
// @Router /api/homework/submit-day5 [post]
func (h *submitHomeworkHandler) Handle(c *fiber.Ctx) error {
	form := h.newForm()
	if err := json.Unmarshal(c.Body(), form); err != nil {
		h.logger.WithError(err).WithField("path", c.Path()).Error("failed to decode homework submission")
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
			Message: response.MsgSubmitFailed,
		})
	}

	client := utils.ClientInfo(c.Get(fiber.HeaderUserAgent), c.Get(fiber.HeaderAcceptLanguage), c.IP())
	sub, err := h.submitter.Submit(c.UserContext(), form, h.defaultDay, client)
	if err != nil {
		if fe, ok := homework.IsValidationError(err); ok {
			return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{
				Message: response.MsgValidationFailed,
				Errors:  fe,
			})
		}
		h.logger.WithError(err).WithField("path", c.Path()).Error("homework submission failed")
		return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
			Message: response.MsgSubmitFailed,
		})
	}

	msg := response.MsgSubmitted
	if sub.IsCompletion() {
		msg = response.MsgChallengeDone
	}
	return c.Status(fiber.StatusOK).JSON(response.SubmitResponse{
		Success:      true,
		Message:      msg,
		SubmissionID: sub.ID,
	})
}
