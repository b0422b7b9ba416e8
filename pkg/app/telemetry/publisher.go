package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	domain "github.com/whopu/challenge/pkg/domain/telemetry"
	"github.com/whopu/challenge/pkg/infra/dispatch"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name=Publisher --dir=. --output=./mocks --filename=publisher_mock.go --case=underscore --with-expecter
type Publisher interface {
	Publish(evt domain.Event)
	Close()
}

type publisher struct {
	logger    *logrus.Logger
	worker    dispatch.Worker
	exporters []domain.Exporter
	now       func() time.Time
}

func NewPublisher(logger *logrus.Logger, worker dispatch.Worker, exporters []domain.Exporter) Publisher {
	return &publisher{
		logger:    logger,
		worker:    worker,
		exporters: exporters,
		now:       time.Now,
	}
}

func (p *publisher) Publish(evt domain.Event) {
	if len(p.exporters) == 0 {
		return
	}
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.Timestamp.IsZero() {
		evt.Timestamp = p.now().UTC()
	}
	p.worker.Enqueue(dispatch.TelemetryTask(evt.Type), func(ctx context.Context) {
		p.export(ctx, evt)
	})
}

func (p *publisher) export(ctx context.Context, evt domain.Event) {
	var (
		mu     sync.Mutex
		failed []string
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, exp := range p.exporters {
		exp := exp
		g.Go(func() error {
			if err := exp.Handle(gctx, evt); err != nil {
				p.logger.WithFields(logrus.Fields{
					"exporter":   exp.Name(),
					"event_type": evt.Type,
					"event_id":   evt.ID,
				}).WithError(err).Error("exporter failed")
				mu.Lock()
				failed = append(failed, exp.Name())
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	if len(failed) > 0 {
		p.logger.WithField("failedExporters", failed).
			Warn(fmt.Sprintf("%d exporters failed to handle event", len(failed)))
	}
}

func (p *publisher) Close() {
	for _, exp := range p.exporters {
		exp.Close()
	}
}
