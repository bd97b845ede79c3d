package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "advice:quota:"
	// Counters outlive their day so late requests around midnight still see them.
	keyTTL = 48 * time.Hour
)

// RedisLimiter counts advice requests per user per UTC day.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	now    func() time.Time
}

// NewRedisLimiter создает дневной лимитер советов поверх Redis.
func NewRedisLimiter(client *redis.Client, limit int) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		now:    time.Now,
	}
}

// Reserve атомарно занимает один запрос из дневного лимита пользователя.
// При превышении лимита резерв сразу снимается и возвращается false.
func (r *RedisLimiter) Reserve(ctx context.Context, userID string) (bool, error) {
	key := dailyKey(userID, r.now())

	pipe := r.client.TxPipeline()
	used := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, keyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("reserve advice quota: %w", err)
	}

	if used.Val() > int64(r.limit) {
		if err := r.release(ctx, key); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

// Release возвращает ранее занятый запрос, если совет не был выдан.
func (r *RedisLimiter) Release(ctx context.Context, userID string) error {
	return r.release(ctx, dailyKey(userID, r.now()))
}

// Limit возвращает дневной лимит.
func (r *RedisLimiter) Limit() int {
	return r.limit
}

func (r *RedisLimiter) release(ctx context.Context, key string) error {
	if err := r.client.Decr(ctx, key).Err(); err != nil {
		return fmt.Errorf("release advice quota: %w", err)
	}
	return nil
}

func dailyKey(userID string, now time.Time) string {
	return keyPrefix + userID + ":" + now.UTC().Format("2006-01-02")
}
