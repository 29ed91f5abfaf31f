package ratelimit

import (
	"context"
	"testing"
	"time"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Skip("Redis not available, skipping integration test")
	}
	t.Cleanup(func() { client.Close() })

	return client
}

func TestSlidingWindowLimiter_Allow(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	prefix := "test:ratelimit:" + uuid.NewString() + ":"
	t.Cleanup(func() { client.Del(ctx, prefix+"ip", prefix+"ip:seq") })

	limiter := NewSlidingWindowLimiter(client, 3, time.Minute, prefix)

	for i := range 3 {
		res, err := limiter.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "request %d", i+1)
		assert.Equal(t, 3-i-1, res.Remaining)
	}

	res, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Positive(t, res.RetryAfter)
	assert.LessOrEqual(t, res.RetryAfter, time.Minute)
}

func TestSlidingWindowLimiter_WindowSlides(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	prefix := "test:ratelimit:" + uuid.NewString() + ":"
	t.Cleanup(func() { client.Del(ctx, prefix+"ip", prefix+"ip:seq") })

	limiter := NewSlidingWindowLimiter(client, 1, time.Minute, prefix)
	start := time.Now()
	limiter.now = func() time.Time { return start }

	res, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	limiter.now = func() time.Time { return start.Add(time.Minute + time.Second) }
	res, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestNewRateLimiter_FallsBackToUnlimited(t *testing.T) {
	tests := map[string]Params{
		"no config": {Config: &config.Config{}},
		"disabled":  {Config: &config.Config{RateLimit: &config.RateLimitConfig{Enabled: false}}, Client: redis.NewClient(&redis.Options{})},
		"no redis":  {Config: &config.Config{RateLimit: &config.RateLimitConfig{Enabled: true}}},
	}

	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			limiter := NewRateLimiter(params)
			assert.IsType(t, Unlimited{}, limiter)

			res, err := limiter.Allow(context.Background(), "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}
