package kafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/whopu/challenge/pkg/domain/telemetry"
)

func TestExporter_ValidateConfig(t *testing.T) {
	e := NewKafkaExporter()
	assert.Equal(t, ExporterName, e.Name())

	tests := []struct {
		name     string
		settings map[string]interface{}
		errMsg   string
	}{
		{name: "valid", settings: map[string]interface{}{"host": "kafka", "port": 9092, "topic": "challenge-events"}},
		{name: "missing host", settings: map[string]interface{}{"port": "9092", "topic": "t"}, errMsg: "kafka host is required"},
		{name: "missing port", settings: map[string]interface{}{"host": "kafka", "topic": "t"}, errMsg: "kafka port is required"},
		{name: "missing topic", settings: map[string]interface{}{"host": "kafka", "port": "9092"}, errMsg: "kafka topic is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.ValidateConfig(tt.settings)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.errMsg)
		})
	}
}

func TestExporter_HandleWithoutProducer(t *testing.T) {
	err := NewKafkaExporter().Handle(context.Background(), telemetry.Event{Type: telemetry.EventRSVPIncremented})
	assert.EqualError(t, err, "kafka producer is not initialized")
}
