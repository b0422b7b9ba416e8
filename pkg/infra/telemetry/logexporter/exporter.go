package logexporter

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

const ExporterName = "log"

// Exporter writes events as structured log lines.
type Exporter struct {
	logger *logrus.Logger
}

func NewLogExporter(logger *logrus.Logger) *Exporter {
	return &Exporter{logger: logger}
}

func (e *Exporter) Name() string {
	return ExporterName
}

func (e *Exporter) ValidateConfig(map[string]interface{}) error {
	return nil
}

func (e *Exporter) WithSettings(map[string]interface{}) (telemetry.Exporter, error) {
	return e, nil
}

func (e *Exporter) Handle(_ context.Context, evt telemetry.Event) error {
	e.logger.WithFields(logrus.Fields{
		"event_id":      evt.ID,
		"event_type":    evt.Type,
		"submission_id": evt.SubmissionID,
		"day":           evt.Day,
		"status":        evt.Status,
		"count":         evt.Count,
		"source":        evt.Source,
	}).Info("event")
	return nil
}

func (e *Exporter) Close() {}
