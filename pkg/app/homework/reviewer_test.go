package homework

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	telemetrymocks "github.com/whopu/challenge/pkg/app/telemetry/mocks"
	"github.com/whopu/challenge/pkg/domain"
	"github.com/whopu/challenge/pkg/domain/submission"
	submissionmocks "github.com/whopu/challenge/pkg/domain/submission/mocks"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

func TestReviewer_SetStatus(t *testing.T) {
	repo := submissionmocks.NewRepository(t)
	publisher := telemetrymocks.NewPublisher(t)
	r := NewReviewer(logrus.New(), repo, publisher)
	ctx := context.Background()

	updated := &submission.Submission{ID: "sub_1", Day: 3, Username: "jane_doe", Status: submission.StatusReviewed}
	repo.On("UpdateStatus", ctx, "sub_1", submission.StatusReviewed).Return(updated, nil)
	publisher.On("Publish", mock.MatchedBy(func(evt telemetry.Event) bool {
		return evt.Type == telemetry.EventSubmissionStatusChanged &&
			evt.Status == "Reviewed" &&
			evt.Params["reviewer"] == "coach"
	})).Return()

	got, err := r.SetStatus(ctx, "sub_1", submission.StatusReviewed, "coach")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestReviewer_SetStatus_NotFound(t *testing.T) {
	repo := submissionmocks.NewRepository(t)
	publisher := telemetrymocks.NewPublisher(t)
	r := NewReviewer(logrus.New(), repo, publisher)

	repo.On("UpdateStatus", mock.Anything, "missing", submission.StatusReviewed).
		Return(nil, domain.NewNotFoundError("submission", "missing"))

	_, err := r.SetStatus(context.Background(), "missing", submission.StatusReviewed, "coach")
	assert.True(t, domain.IsNotFoundError(err))
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestReviewer_List(t *testing.T) {
	repo := submissionmocks.NewRepository(t)
	r := NewReviewer(logrus.New(), repo, telemetrymocks.NewPublisher(t))
	filter := submission.ListFilter{Day: 2, Limit: 50}

	repo.On("List", mock.Anything, filter).Return([]submission.Submission{{ID: "sub_1"}, {ID: "sub_2"}}, nil)

	subs, err := r.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}
