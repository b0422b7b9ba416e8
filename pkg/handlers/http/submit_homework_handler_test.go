package http

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/whopu/challenge/pkg/app/homework"
	homeworkmocks "github.com/whopu/challenge/pkg/app/homework/mocks"
	telemetrymocks "github.com/whopu/challenge/pkg/app/telemetry/mocks"
	"github.com/whopu/challenge/pkg/domain/submission"
	submissionmocks "github.com/whopu/challenge/pkg/domain/submission/mocks"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	dispatchmocks "github.com/whopu/challenge/pkg/infra/dispatch/mocks"
	mailmocks "github.com/whopu/challenge/pkg/infra/mail/mocks"
	sheetsmocks "github.com/whopu/challenge/pkg/infra/sheets/mocks"
)

type homeworkStack struct {
	repo      *submissionmocks.Repository
	forwarder *sheetsmocks.Forwarder
	mailer    *mailmocks.Mailer
	publisher *telemetrymocks.Publisher
}

func newHomeworkApp(t *testing.T) (*fiber.App, homeworkStack) {
	s := homeworkStack{
		repo:      submissionmocks.NewRepository(t),
		forwarder: sheetsmocks.NewForwarder(t),
		mailer:    mailmocks.NewMailer(t),
		publisher: telemetrymocks.NewPublisher(t),
	}
	submitter := homework.NewSubmitter(testLogger(), s.repo, s.forwarder, s.mailer,
		&dispatchmocks.InlineWorker{}, s.publisher, func() string { return "sub_1769461200000_abc123" })

	app := fiber.New()
	app.Post("/api/homework/submit", NewSubmitHomeworkHandler(testLogger(), submitter, 1,
		func() request.HomeworkForm { return &request.WorksheetSubmissionRequest{} }).Handle)
	app.Post("/api/homework/submit-day2", NewSubmitHomeworkHandler(testLogger(), submitter, 2,
		func() request.HomeworkForm { return &request.MarketResearchSubmissionRequest{} }).Handle)
	app.Post("/api/homework/submit-day5", NewSubmitHomeworkHandler(testLogger(), submitter, 5,
		func() request.HomeworkForm { return &request.ProfileLinkSubmissionRequest{} }).Handle)
	return app, s
}

func (s homeworkStack) expectStored() {
	s.repo.On("Create", mock.Anything, mock.AnythingOfType("*submission.Submission")).Return(nil)
	s.forwarder.On("Forward", mock.Anything, mock.Anything).Return(nil)
	s.publisher.On("Publish", mock.Anything).Return()
}

func TestSubmitWorksheet_OK(t *testing.T) {
	app, s := newHomeworkApp(t)
	s.expectStored()

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit", map[string]interface{}{
		"username": "jane_doe",
		"email":    "jane@example.com",
		"day":      1,
		"worksheetData": []map[string]interface{}{
			{"cantBecause": "no money", "reframed": true, "neverEasierBecause": "tools are free"},
			{"cantBecause": "", "reframed": false, "neverEasierBecause": ""},
		},
	}, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Homework submitted successfully!", body["message"])
	assert.Equal(t, "sub_1769461200000_abc123", body["submissionId"])
}

func TestSubmitWorksheet_ValidationFailed(t *testing.T) {
	app, _ := newHomeworkApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit", map[string]interface{}{
		"username":      "j",
		"email":         "jane@",
		"worksheetData": []map[string]interface{}{{"cantBecause": "only one side"}},
	}, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Validation failed", body["message"])
	errs, ok := body["errors"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, request.MsgUsername, errs["username"])
	assert.Equal(t, request.MsgEmail, errs["email"])
	assert.Equal(t, request.MsgWorksheetHalf, errs["worksheet"])
}

func TestSubmitMarketResearch_ValidationFailed(t *testing.T) {
	app, _ := newHomeworkApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit-day2", map[string]interface{}{
		"username":       "jane_doe",
		"email":          "jane@example.com",
		"market":         "ab",
		"whyProfitable":  "short",
		"problem":        "people struggle a lot",
		"desiredOutcome": "they want money",
	}, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, request.MsgMarket, errs["market"])
	assert.Equal(t, request.MsgWhyProfitable, errs["whyProfitable"])
	assert.NotContains(t, errs, "problem")
}

func TestSubmitProfile_CompletesChallenge(t *testing.T) {
	app, s := newHomeworkApp(t)
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(sub *submission.Submission) bool {
		return sub.Status == submission.StatusChallengeComplete && sub.Day == 5
	})).Return(nil)
	s.forwarder.On("Forward", mock.Anything, mock.Anything).Return(nil)
	s.mailer.On("SendCompletion", mock.Anything, mock.Anything).Return(nil)
	s.publisher.On("Publish", mock.Anything).Return()

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit-day5", map[string]interface{}{
		"username":    "jane_doe",
		"email":       "jane@example.com",
		"profileLink": "https://x.com/jane",
	}, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Congratulations! You've completed the 5 Day Challenge!", body["message"])
}

func TestSubmitProfile_CompletesRegardlessOfDay(t *testing.T) {
	app, s := newHomeworkApp(t)
	s.repo.On("Create", mock.Anything, mock.MatchedBy(func(sub *submission.Submission) bool {
		return sub.Status == submission.StatusChallengeComplete && sub.Day == 3
	})).Return(nil)
	s.forwarder.On("Forward", mock.Anything, mock.Anything).Return(nil)
	s.mailer.On("SendCompletion", mock.Anything, mock.Anything).Return(nil)
	s.publisher.On("Publish", mock.Anything).Return()

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit-day5", map[string]interface{}{
		"username":    "jane_doe",
		"email":       "jane@example.com",
		"day":         3,
		"profileLink": "https://x.com/jane",
	}, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Congratulations! You've completed the 5 Day Challenge!", body["message"])
}

func TestSubmit_MalformedJSON(t *testing.T) {
	app, _ := newHomeworkApp(t)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit", `{"username":`, nil)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Failed to submit homework. Please try again.", body["message"])
}

func TestSubmit_RepositoryFailure(t *testing.T) {
	submitter := homeworkmocks.NewSubmitter(t)
	submitter.On("Submit", mock.Anything, mock.Anything, 1, mock.Anything).Return(nil, errors.New("db down"))

	app := fiber.New()
	app.Post("/api/homework/submit", NewSubmitHomeworkHandler(testLogger(), submitter, 1,
		func() request.HomeworkForm { return &request.WorksheetSubmissionRequest{} }).Handle)

	status, body := doJSON(t, app, fiber.MethodPost, "/api/homework/submit", map[string]interface{}{}, nil)
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "Failed to submit homework. Please try again.", body["message"])
}
