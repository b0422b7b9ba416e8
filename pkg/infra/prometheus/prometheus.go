package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	HTTPRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "challenge_http_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"route"},
	)

	SubmissionsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_submissions_total",
			Help: "Homework submissions by day and result",
		},
		[]string{"day", "result"},
	)

	SheetsForwardTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_sheets_forward_total",
			Help: "Spreadsheet webhook forwards by result",
		},
		[]string{"result"},
	)

	SheetsForwardLatency = promauto.With(registerer).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "challenge_sheets_forward_latency_ms",
			Help:    "Spreadsheet webhook latency in milliseconds",
			Buckets: latencyBuckets,
		},
	)

	RSVPTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_rsvp_total",
			Help: "RSVP counter increments by source",
		},
		[]string{"source"},
	)

	CheckoutEventsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_checkout_events_total",
			Help: "Checkout webhook events by outcome",
		},
		[]string{"outcome"},
	)

	DispatchDroppedTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_dispatch_dropped_total",
			Help: "Background tasks dropped because the queue was full",
		},
		[]string{"task"},
	)

	RateLimitedTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "challenge_rate_limited_total",
			Help: "Requests rejected by the submission rate limiter",
		},
	)
)

type MetricsConfig struct {
	EnableLatency bool
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency: true,
	}
}

var Config = DefaultMetricsConfig()

var initOnce sync.Once

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

func Gatherer() prometheus.Gatherer {
	return registry
}
