package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/whopu/challenge/pkg/app/rsvp"
	rsvpmocks "github.com/whopu/challenge/pkg/app/rsvp/mocks"
	telemetrymocks "github.com/whopu/challenge/pkg/app/telemetry/mocks"
	"github.com/whopu/challenge/pkg/domain/checkout"
	checkoutmocks "github.com/whopu/challenge/pkg/domain/checkout/mocks"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

type processorDeps struct {
	events    *checkoutmocks.EventRepository
	counter   *rsvpmocks.Counter
	publisher *telemetrymocks.Publisher
}

func setupProcessor(t *testing.T, planID string) (Processor, processorDeps) {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	v, err := NewVerifier(ProviderHMAC, secret, "")
	require.NoError(t, err)
	d := processorDeps{
		events:    checkoutmocks.NewEventRepository(t),
		counter:   rsvpmocks.NewCounter(t),
		publisher: telemetrymocks.NewPublisher(t),
	}
	return NewProcessor(logger, v, d.events, d.counter, d.publisher, planID), d
}

func TestProcess_Counted(t *testing.T) {
	p, d := setupProcessor(t, "plan_6qlhHFelOu6cx")
	payload := `{"id":"evt_1","action":"payment.succeeded","data":{"plan_id":"plan_6qlhHFelOu6cx"}}`

	d.events.On("MarkProcessed", mock.Anything, "evt_1", ProviderHMAC).Return(true, nil)
	d.counter.On("Increment", mock.Anything, rsvp.SourceCheckout).Return(int64(101), nil)
	d.publisher.On("Publish", mock.MatchedBy(func(evt telemetry.Event) bool {
		return evt.Type == telemetry.EventCheckoutCompleted && evt.Count == 101
	})).Return()

	res, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, int64(101), res.Count)
	assert.Equal(t, OutcomeCounted, res.Outcome)
}

func TestProcess_Duplicate(t *testing.T) {
	p, d := setupProcessor(t, "")
	payload := `{"id":"evt_1","event":"checkout.completed"}`

	d.events.On("MarkProcessed", mock.Anything, "evt_1", ProviderHMAC).Return(false, nil)

	res, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.False(t, res.Counted)
	assert.Equal(t, OutcomeDuplicate, res.Outcome)
	d.counter.AssertNotCalled(t, "Increment", mock.Anything, mock.Anything)
}

func TestProcess_NotCompleted(t *testing.T) {
	p, d := setupProcessor(t, "")
	payload := `{"type":"resize"}`

	res, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnored, res.Outcome)
	d.events.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_OtherPlan(t *testing.T) {
	p, d := setupProcessor(t, "plan_6qlhHFelOu6cx")
	payload := `{"id":"evt_5","action":"payment.succeeded","data":{"plan_id":"plan_other"}}`

	res, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.Equal(t, OutcomeOtherPlan, res.Outcome)
	d.events.AssertNotCalled(t, "MarkProcessed", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcess_BadSignature(t *testing.T) {
	p, _ := setupProcessor(t, "")

	res, err := p.Process(context.Background(), []byte(`{"completed":true}`), "00ff")
	assert.ErrorIs(t, err, checkout.ErrInvalidSignature)
	assert.Equal(t, OutcomeRejected, res.Outcome)
}

func TestProcess_StoreError(t *testing.T) {
	p, d := setupProcessor(t, "")
	payload := `{"id":"evt_1","completed":true}`

	d.events.On("MarkProcessed", mock.Anything, "evt_1", ProviderHMAC).Return(false, errors.New("redis down"))

	_, err := p.Process(context.Background(), []byte(payload), sign(payload))
	assert.ErrorContains(t, err, "failed to record checkout event")
}

func TestProcessor_SignatureHeader(t *testing.T) {
	p, _ := setupProcessor(t, "")
	assert.Equal(t, DefaultHMACHeader, p.SignatureHeader())
}

func TestProcess_IncrementFailureAllowsRedelivery(t *testing.T) {
	p, d := setupProcessor(t, "")
	payload := `{"id":"evt_7","event":"checkout.completed"}`

	d.events.On("MarkProcessed", mock.Anything, "evt_7", ProviderHMAC).Return(true, nil).Twice()
	d.counter.On("Increment", mock.Anything, rsvp.SourceCheckout).Return(int64(0), errors.New("redis down")).Once()
	d.events.On("Forget", mock.Anything, "evt_7").Return(nil).Once()
	d.counter.On("Increment", mock.Anything, rsvp.SourceCheckout).Return(int64(5), nil).Once()
	d.publisher.On("Publish", mock.Anything).Return().Once()

	_, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.Error(t, err)

	res, err := p.Process(context.Background(), []byte(payload), sign(payload))
	require.NoError(t, err)
	assert.True(t, res.Counted)
	assert.Equal(t, int64(5), res.Count)
	assert.Equal(t, OutcomeCounted, res.Outcome)
}
