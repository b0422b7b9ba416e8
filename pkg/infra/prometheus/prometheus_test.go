package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeIsIdempotent(t *testing.T) {
	Initialize(MetricsConfig{EnableLatency: false})
	Initialize(MetricsConfig{EnableLatency: true})
	assert.True(t, Config.EnableLatency)
}

func TestCountersAreRegistered(t *testing.T) {
	SubmissionsTotal.WithLabelValues("3", "accepted").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(SubmissionsTotal.WithLabelValues("3", "accepted")))

	families, err := Gatherer().Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["challenge_submissions_total"])
}
