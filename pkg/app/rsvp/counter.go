package rsvp

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	apptelemetry "github.com/whopu/challenge/pkg/app/telemetry"
	"github.com/whopu/challenge/pkg/domain/rsvp"
	"github.com/whopu/challenge/pkg/domain/telemetry"
	"github.com/whopu/challenge/pkg/infra/prometheus"
)

const (
	SourceForm     = "form"
	SourceCheckout = "checkout"
)

//go:generate mockery --name=Counter --dir=. --output=./mocks --filename=counter_mock.go --case=underscore --with-expecter
type Counter interface {
	Count(ctx context.Context) (int64, error)
	Increment(ctx context.Context, source string) (int64, error)
}

type counter struct {
	logger    *logrus.Logger
	repo      rsvp.Repository
	publisher apptelemetry.Publisher
}

func NewCounter(logger *logrus.Logger, repo rsvp.Repository, publisher apptelemetry.Publisher) Counter {
	return &counter{
		logger:    logger,
		repo:      repo,
		publisher: publisher,
	}
}

func (c *counter) Count(ctx context.Context) (int64, error) {
	n, err := c.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read rsvp count: %w", err)
	}
	return n, nil
}

func (c *counter) Increment(ctx context.Context, source string) (int64, error) {
	n, err := c.repo.Increment(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to increment rsvp count: %w", err)
	}
	prometheus.RSVPTotal.WithLabelValues(source).Inc()
	c.logger.WithFields(logrus.Fields{
		"count":  n,
		"source": source,
	}).Info("rsvp count incremented")

	c.publisher.Publish(telemetry.Event{
		Type:   telemetry.EventRSVPIncremented,
		Count:  n,
		Source: source,
	})
	return n, nil
}
