package quota

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// TestDailyKeyUsesUTCDate проверяет ключ квоты по дате UTC.
func TestDailyKeyUsesUTCDate(t *testing.T) {
	zone := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2024, time.March, 15, 1, 30, 0, 0, zone)

	assert.Equal(t, "advice:quota:student-1:2024-03-14", dailyKey("student-1", local))
}

// TestDailyKeyChangesAtMidnight проверяет смену ключа в полночь.
func TestDailyKeyChangesAtMidnight(t *testing.T) {
	before := time.Date(2024, time.March, 14, 23, 59, 59, 0, time.UTC)
	after := before.Add(2 * time.Second)

	assert.NotEqual(t, dailyKey("student-1", before), dailyKey("student-1", after))
}

// TestNewRedisLimiterKeepsLimit проверяет сохранение лимита.
func TestNewRedisLimiterKeepsLimit(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	limiter := NewRedisLimiter(client, 5)

	assert.Equal(t, 5, limiter.Limit())
}

// TestRedisLimiterReportsUnreachableRedis проверяет ошибку при недоступном Redis.
func TestRedisLimiterReportsUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewRedisLimiter(client, 5)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	reserved, err := limiter.Reserve(ctx, "student-1")
	assert.Error(t, err)
	assert.False(t, reserved)

	assert.Error(t, limiter.Release(ctx, "student-1"))
}
