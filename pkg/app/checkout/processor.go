package checkout

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/app/rsvp"
	apptelemetry "github.com/whopu/challenge/pkg/app/telemetry"
	"github.com/whopu/challenge/pkg/domain/checkout"
	"github.com/whopu/challenge/pkg/domain/telemetry"
	"github.com/whopu/challenge/pkg/infra/prometheus"
)

const (
	OutcomeCounted   = "counted"
	OutcomeDuplicate = "duplicate"
	OutcomeIgnored   = "ignored"
	OutcomeOtherPlan = "other_plan"
	OutcomeRejected  = "rejected"
)

type Result struct {
	Counted bool
	Count   int64
	Outcome string
}

//go:generate mockery --name=Processor --dir=. --output=./mocks --filename=processor_mock.go --case=underscore --with-expecter
type Processor interface {
	SignatureHeader() string
	Process(ctx context.Context, payload []byte, signature string) (Result, error)
}

type processor struct {
	logger    *logrus.Logger
	verifier  Verifier
	events    checkout.EventRepository
	counter   rsvp.Counter
	publisher apptelemetry.Publisher
	planID    string
}

func NewProcessor(
	logger *logrus.Logger,
	verifier Verifier,
	events checkout.EventRepository,
	counter rsvp.Counter,
	publisher apptelemetry.Publisher,
	planID string,
) Processor {
	return &processor{
		logger:    logger,
		verifier:  verifier,
		events:    events,
		counter:   counter,
		publisher: publisher,
		planID:    planID,
	}
}

func (p *processor) SignatureHeader() string {
	return p.verifier.Header()
}

// Process verifies the notification and bumps the RSVP counter once per
// completed checkout event id.
func (p *processor) Process(ctx context.Context, payload []byte, signature string) (Result, error) {
	evt, err := p.verifier.Verify(payload, signature)
	if err != nil {
		prometheus.CheckoutEventsTotal.WithLabelValues(OutcomeRejected).Inc()
		return Result{Outcome: OutcomeRejected}, err
	}

	fields := logrus.Fields{
		"eventId":  evt.ID,
		"provider": evt.Provider,
		"type":     evt.Type,
	}

	if !evt.Completed {
		return p.done(fields, Result{Outcome: OutcomeIgnored}), nil
	}
	if p.planID != "" && evt.PlanID != "" && evt.PlanID != p.planID {
		fields["planId"] = evt.PlanID
		return p.done(fields, Result{Outcome: OutcomeOtherPlan}), nil
	}

	first, err := p.events.MarkProcessed(ctx, evt.ID, evt.Provider)
	if err != nil {
		return Result{}, fmt.Errorf("failed to record checkout event: %w", err)
	}
	if !first {
		return p.done(fields, Result{Outcome: OutcomeDuplicate}), nil
	}

	count, err := p.counter.Increment(ctx, rsvp.SourceCheckout)
	if err != nil {
		// the provider retries on 5xx; the retry must not look like a duplicate
		if ferr := p.events.Forget(ctx, evt.ID); ferr != nil {
			p.logger.WithError(ferr).WithFields(fields).Error("failed to release checkout event marker")
		}
		return Result{}, err
	}

	p.publisher.Publish(telemetry.Event{
		Type:   telemetry.EventCheckoutCompleted,
		Count:  count,
		Source: evt.Provider,
		Params: map[string]string{"eventId": evt.ID, "email": evt.Email},
	})
	return p.done(fields, Result{Counted: true, Count: count, Outcome: OutcomeCounted}), nil
}

func (p *processor) done(fields logrus.Fields, res Result) Result {
	prometheus.CheckoutEventsTotal.WithLabelValues(res.Outcome).Inc()
	fields["outcome"] = res.Outcome
	p.logger.WithFields(fields).Info("checkout event processed")
	return res
}
