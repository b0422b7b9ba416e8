package homework

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	apptelemetry "github.com/whopu/challenge/pkg/app/telemetry"
	"github.com/whopu/challenge/pkg/domain/submission"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

//go:generate mockery --name=Reviewer --dir=. --output=./mocks --filename=reviewer_mock.go --case=underscore --with-expecter
type Reviewer interface {
	List(ctx context.Context, filter submission.ListFilter) ([]submission.Submission, error)
	Get(ctx context.Context, id string) (*submission.Submission, error)
	SetStatus(ctx context.Context, id string, status submission.Status, reviewer string) (*submission.Submission, error)
}

type reviewer struct {
	logger    *logrus.Logger
	repo      submission.Repository
	publisher apptelemetry.Publisher
}

func NewReviewer(logger *logrus.Logger, repo submission.Repository, publisher apptelemetry.Publisher) Reviewer {
	return &reviewer{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

func (r *reviewer) List(ctx context.Context, filter submission.ListFilter) ([]submission.Submission, error) {
	subs, err := r.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return subs, nil
}

func (r *reviewer) Get(ctx context.Context, id string) (*submission.Submission, error) {
	return r.repo.Get(ctx, id)
}

func (r *reviewer) SetStatus(
	ctx context.Context,
	id string,
	status submission.Status,
	reviewer string,
) (*submission.Submission, error) {
	sub, err := r.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"submissionId": id,
		"status":       status,
		"reviewer":     reviewer,
	}).Info("submission status changed")

	r.publisher.Publish(telemetry.Event{
		Type:         telemetry.EventSubmissionStatusChanged,
		SubmissionID: sub.ID,
		Day:          sub.Day,
		Username:     sub.Username,
		Status:       string(status),
		Params:       map[string]string{"reviewer": reviewer},
	})
	return sub, nil
}
