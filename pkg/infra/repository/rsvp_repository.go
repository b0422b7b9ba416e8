package repository

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/go-redis/redis/v8"
	"github.com/whopu/challenge/pkg/domain/rsvp"
	"gorm.io/gorm"
)

// MemoryRSVPRepository is an atomic process local counter.
type MemoryRSVPRepository struct {
	count atomic.Int64
}

func NewMemoryRSVPRepository(initial int64) rsvp.Repository {
	r := &MemoryRSVPRepository{}
	r.count.Store(initial)
	return r
}

func (r *MemoryRSVPRepository) Count(context.Context) (int64, error) {
	return r.count.Load(), nil
}

func (r *MemoryRSVPRepository) Increment(context.Context) (int64, error) {
	return r.count.Add(1), nil
}

type redisRSVPRepository struct {
	client redis.Cmdable
	key    string
}

func NewRedisRSVPRepository(client redis.Cmdable, key string) rsvp.Repository {
	return &redisRSVPRepository{
		client: client,
		key:    key,
	}
}

func (r *redisRSVPRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.client.Get(ctx, r.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("rsvp count: %w", err)
	}
	return n, nil
}

func (r *redisRSVPRepository) Increment(ctx context.Context) (int64, error) {
	n, err := r.client.Incr(ctx, r.key).Result()
	if err != nil {
		return 0, fmt.Errorf("rsvp increment: %w", err)
	}
	return n, nil
}

type PostgresRSVPRepository struct {
	db *gorm.DB
}

func NewPostgresRSVPRepository(db *gorm.DB) rsvp.Repository {
	return &PostgresRSVPRepository{
		db: db,
	}
}

func (r *PostgresRSVPRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw("SELECT count FROM rsvp_counter WHERE id = 1").
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("rsvp count: %w", err)
	}
	return count, nil
}

func (r *PostgresRSVPRepository) Increment(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Raw(`INSERT INTO rsvp_counter (id, count, updated_at) VALUES (1, 1, NOW())
			ON CONFLICT (id) DO UPDATE SET count = rsvp_counter.count + 1, updated_at = NOW()
			RETURNING count`).
		Scan(&count).Error
	if err != nil {
		return 0, fmt.Errorf("rsvp increment: %w", err)
	}
	return count, nil
}
