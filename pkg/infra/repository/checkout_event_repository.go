package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/whopu/challenge/pkg/domain/checkout"
	"gorm.io/gorm"
)

const CheckoutEventKeyPattern = "checkout:event:%s"

type MemoryCheckoutEventRepository struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryCheckoutEventRepository(ttl time.Duration) checkout.EventRepository {
	return &MemoryCheckoutEventRepository{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (r *MemoryCheckoutEventRepository) MarkProcessed(_ context.Context, id, _ string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, at := range r.seen {
		if r.ttl > 0 && now.Sub(at) > r.ttl {
			delete(r.seen, k)
		}
	}
	if _, ok := r.seen[id]; ok {
		return false, nil
	}
	r.seen[id] = now
	return true, nil
}

func (r *MemoryCheckoutEventRepository) Forget(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.seen, id)
	return nil
}

type redisCheckoutEventRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCheckoutEventRepository(client redis.Cmdable, ttl time.Duration) checkout.EventRepository {
	return &redisCheckoutEventRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisCheckoutEventRepository) MarkProcessed(ctx context.Context, id, provider string) (bool, error) {
	ok, err := r.client.SetNX(ctx, fmt.Sprintf(CheckoutEventKeyPattern, id), provider, r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("checkout event: %w", err)
	}
	return ok, nil
}

func (r *redisCheckoutEventRepository) Forget(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, fmt.Sprintf(CheckoutEventKeyPattern, id)).Err(); err != nil {
		return fmt.Errorf("checkout event: %w", err)
	}
	return nil
}

type PostgresCheckoutEventRepository struct {
	db *gorm.DB
}

func NewPostgresCheckoutEventRepository(db *gorm.DB) checkout.EventRepository {
	return &PostgresCheckoutEventRepository{
		db: db,
	}
}

func (r *PostgresCheckoutEventRepository) MarkProcessed(ctx context.Context, id, provider string) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		"INSERT INTO checkout_events (event_id, provider) VALUES (?, ?) ON CONFLICT (event_id) DO NOTHING",
		id, provider,
	)
	if result.Error != nil {
		return false, fmt.Errorf("checkout event: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *PostgresCheckoutEventRepository) Forget(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Exec("DELETE FROM checkout_events WHERE event_id = ?", id).Error; err != nil {
		return fmt.Errorf("checkout event: %w", err)
	}
	return nil
}
