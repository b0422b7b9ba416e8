package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const KeyPattern = "ratelimit:%s:%s"

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type Limiter interface {
	Allow(ctx context.Context, scope, key string) (Result, error)
}

type Opts struct {
	TimeProvider func() time.Time
	UuidProvider func() uuid.UUID
}

// slidingWindowLimiter keeps one sorted set per key, scored by unix seconds.
type slidingWindowLimiter struct {
	redis        redis.Cmdable
	limit        int
	window       time.Duration
	timeProvider func() time.Time
	uuidProvider func() uuid.UUID
}

func NewSlidingWindowLimiter(client redis.Cmdable, limit int, window time.Duration, opts *Opts) Limiter {
	l := &slidingWindowLimiter{
		redis:        client,
		limit:        limit,
		window:       window,
		timeProvider: time.Now,
		uuidProvider: uuid.New,
	}
	if opts != nil && opts.TimeProvider != nil {
		l.timeProvider = opts.TimeProvider
	}
	if opts != nil && opts.UuidProvider != nil {
		l.uuidProvider = opts.UuidProvider
	}
	return l
}

func (l *slidingWindowLimiter) Allow(ctx context.Context, scope, key string) (Result, error) {
	now := l.timeProvider()
	windowStart := now.Add(-l.window).Unix()
	redisKey := fmt.Sprintf(KeyPattern, scope, key)

	res := Result{
		Limit:   l.limit,
		ResetAt: now.Add(l.window),
	}

	count, err := l.redis.ZCount(ctx, redisKey,
		strconv.FormatInt(windowStart, 10),
		strconv.FormatInt(now.Unix(), 10)).Result()
	if err != nil {
		return res, fmt.Errorf("failed to get count for %s: %w", redisKey, err)
	}

	if count >= int64(l.limit) {
		res.RetryAfter = l.window
		return res, nil
	}

	member := fmt.Sprintf("%d:%s", now.Unix(), l.uuidProvider().String())
	pipe := l.redis.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	pipe.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(now.Unix()),
		Member: member,
	})
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return res, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	res.Allowed = true
	res.Remaining = l.limit - int(count) - 1
	return res, nil
}
