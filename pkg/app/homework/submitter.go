package homework

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	apptelemetry "github.com/whopu/challenge/pkg/app/telemetry"
	"github.com/whopu/challenge/pkg/domain"
	"github.com/whopu/challenge/pkg/domain/submission"
	"github.com/whopu/challenge/pkg/domain/telemetry"
	"github.com/whopu/challenge/pkg/handlers/http/request"
	"github.com/whopu/challenge/pkg/infra/dispatch"
	"github.com/whopu/challenge/pkg/infra/mail"
	"github.com/whopu/challenge/pkg/infra/prometheus"
	"github.com/whopu/challenge/pkg/infra/sheets"
)

// Submitter validates a homework form, stores it and schedules the
// spreadsheet forward. Forward and mail failures never reach the caller.
//
//go:generate mockery --name=Submitter --dir=. --output=./mocks --filename=submitter_mock.go --case=underscore --with-expecter
type Submitter interface {
	Submit(ctx context.Context, form request.HomeworkForm, defaultDay int, client domain.ClientInfoJSON) (*submission.Submission, error)
}

type submitter struct {
	logger    *logrus.Logger
	repo      submission.Repository
	forwarder sheets.Forwarder
	mailer    mail.Mailer
	worker    dispatch.Worker
	publisher apptelemetry.Publisher
	newID     submission.IDGenerator
}

func NewSubmitter(
	logger *logrus.Logger,
	repo submission.Repository,
	forwarder sheets.Forwarder,
	mailer mail.Mailer,
	worker dispatch.Worker,
	publisher apptelemetry.Publisher,
	newID submission.IDGenerator,
) Submitter {
	return &submitter{
		logger:    logger,
		repo:      repo,
		forwarder: forwarder,
		mailer:    mailer,
		worker:    worker,
		publisher: publisher,
		newID:     newID,
	}
}

func (s *submitter) Submit(
	ctx context.Context,
	form request.HomeworkForm,
	defaultDay int,
	client domain.ClientInfoJSON,
) (*submission.Submission, error) {
	if errs := form.Validate(); errs != nil {
		prometheus.SubmissionsTotal.WithLabelValues(strconv.Itoa(defaultDay), "invalid").Inc()
		return nil, errs
	}

	sub := form.ToSubmission(defaultDay)
	sub.ID = s.newID()
	sub.Client = client
	day := strconv.Itoa(sub.Day)

	if err := s.repo.Create(ctx, sub); err != nil {
		prometheus.SubmissionsTotal.WithLabelValues(day, "error").Inc()
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}
	prometheus.SubmissionsTotal.WithLabelValues(day, "ok").Inc()

	s.logger.WithFields(logrus.Fields{
		"submissionId": sub.ID,
		"day":          sub.Day,
		"kind":         sub.Kind,
		"username":     sub.Username,
	}).Info("homework submitted")

	snapshot := *sub
	if !s.worker.Enqueue(dispatch.TaskSheets, func(ctx context.Context) {
		_ = s.forwarder.Forward(ctx, &snapshot)
	}) {
		s.logger.WithField("submissionId", sub.ID).Warn("spreadsheet forward dropped, queue full")
	}

	if sub.IsCompletion() {
		if !s.worker.Enqueue(dispatch.TaskMail, func(ctx context.Context) {
			if err := s.mailer.SendCompletion(ctx, &snapshot); err != nil {
				s.logger.WithField("submissionId", snapshot.ID).WithError(err).Error("failed to send completion email")
			}
		}) {
			s.logger.WithField("submissionId", sub.ID).Warn("completion email dropped, queue full")
		}
	}

	s.publisher.Publish(telemetry.Event{
		Type:         telemetry.EventSubmissionCreated,
		SubmissionID: sub.ID,
		Day:          sub.Day,
		Username:     sub.Username,
		Status:       string(sub.Status),
		IP:           client.IP,
		Device:       client.Device,
		Os:           client.OS,
		Browser:      client.Browser,
		Locale:       client.Locale,
	})

	return sub, nil
}

// IsValidationError reports whether err carries field errors for the client.
func IsValidationError(err error) (request.FieldErrors, bool) {
	var fe request.FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
