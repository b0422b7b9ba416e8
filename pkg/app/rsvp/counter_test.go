package rsvp

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	telemetrymocks "github.com/whopu/challenge/pkg/app/telemetry/mocks"
	rsvpmocks "github.com/whopu/challenge/pkg/domain/rsvp/mocks"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

func TestCounter_Increment(t *testing.T) {
	repo := rsvpmocks.NewRepository(t)
	publisher := telemetrymocks.NewPublisher(t)
	c := NewCounter(logrus.New(), repo, publisher)

	repo.On("Increment", mock.Anything).Return(int64(43), nil)
	publisher.On("Publish", mock.MatchedBy(func(evt telemetry.Event) bool {
		return evt.Type == telemetry.EventRSVPIncremented && evt.Count == 43 && evt.Source == SourceForm
	})).Return()

	n, err := c.Increment(context.Background(), SourceForm)
	require.NoError(t, err)
	assert.Equal(t, int64(43), n)
}

func TestCounter_IncrementError(t *testing.T) {
	repo := rsvpmocks.NewRepository(t)
	publisher := telemetrymocks.NewPublisher(t)
	c := NewCounter(logrus.New(), repo, publisher)

	repo.On("Increment", mock.Anything).Return(int64(0), errors.New("redis down"))

	_, err := c.Increment(context.Background(), SourceForm)
	assert.ErrorContains(t, err, "failed to increment rsvp count")
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestCounter_Count(t *testing.T) {
	repo := rsvpmocks.NewRepository(t)
	c := NewCounter(logrus.New(), repo, telemetrymocks.NewPublisher(t))

	repo.On("Count", mock.Anything).Return(int64(7), nil)

	n, err := c.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}
