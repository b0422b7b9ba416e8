package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/whopu/challenge/pkg/infra/prometheus"
)

type metricsMiddleware struct {
	enableLatency bool
}

func NewMetricsMiddleware(enableLatency bool) Middleware {
	return &metricsMiddleware{enableLatency: enableLatency}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		// route pattern, so ids don't explode label cardinality
		route := c.Route().Path
		prometheus.HTTPRequestTotal.WithLabelValues(route, c.Method(), statusClass(status)).Inc()
		if m.enableLatency {
			prometheus.HTTPRequestLatency.WithLabelValues(route).
				Observe(float64(time.Since(start).Milliseconds()))
		}
		return err
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
