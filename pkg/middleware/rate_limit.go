package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/whopu/challenge/pkg/common"
	"github.com/whopu/challenge/pkg/infra/prometheus"
	"github.com/whopu/challenge/pkg/infra/ratelimit"
)

const MsgTooManySubmissions = "Too many submissions. Please try again later."

type rateLimitMiddleware struct {
	logger  *logrus.Logger
	limiter ratelimit.Limiter
	scope   string
}

func NewRateLimitMiddleware(logger *logrus.Logger, limiter ratelimit.Limiter, scope string) Middleware {
	return &rateLimitMiddleware{
		logger:  logger,
		limiter: limiter,
		scope:   scope,
	}
}

// Middleware limits requests per client IP. Limiter failures let the
// request through.
func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m.limiter == nil {
			return c.Next()
		}
		res, err := m.limiter.Allow(c.UserContext(), m.scope, c.IP())
		if err != nil {
			m.logger.WithError(err).WithField("ip", c.IP()).Warn("rate limiter unavailable")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			prometheus.RateLimitedTotal.Inc()
			c.Set(common.RetryAfterHeader, strconv.Itoa(int(res.RetryAfter.Seconds())))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": MsgTooManySubmissions,
			})
		}
		return c.Next()
	}
}
