package common

const (
	HomeworkRateLimitScope = "homework"

	RetryAfterHeader = "Retry-After"
	RequestIDHeader  = "X-Request-Id"

	DefaultChallengeDays = 5
)
