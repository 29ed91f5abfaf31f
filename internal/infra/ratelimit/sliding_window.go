// Package ratelimit implements a Redis sorted-set sliding window limiter.
package ratelimit

import (
	"context"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	defaultRequestsPerWindow = 10
	defaultWindowSize        = time.Minute
	defaultPrefix            = "storefront:ratelimit:"
)

// slidingWindowScript trims entries older than the window, then admits the
// request only while the set holds fewer than limit members.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local counter_key = KEYS[2]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)
	local count = redis.call('ZCARD', key)

	if count < limit then
		local seq = redis.call('INCR', counter_key)
		redis.call('ZADD', key, now, now .. ':' .. seq)
		redis.call('PEXPIRE', key, window_ms)
		redis.call('PEXPIRE', counter_key, window_ms)
		return {1, limit - count - 1, 0}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry_after = 0
	if #oldest >= 2 then
		retry_after = oldest[2] + window_ms - now
	end
	return {0, 0, retry_after}
`)

// SlidingWindowLimiter admits at most limit requests per key within any window.
type SlidingWindowLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewSlidingWindowLimiter(client *redis.Client, limit int, window time.Duration, prefix string) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

type Params struct {
	fx.In

	Config *config.Config
	Client *redis.Client `optional:"true"`
}

// NewRateLimiter admits everything when limiting is disabled or Redis is not configured.
func NewRateLimiter(params Params) service.RateLimiter {
	cfg := params.Config.RateLimit
	if cfg == nil || !cfg.Enabled || params.Client == nil {
		return Unlimited{}
	}

	limit := cfg.RequestsPerWindow
	if limit <= 0 {
		limit = defaultRequestsPerWindow
	}
	window := cfg.WindowSize
	if window <= 0 {
		window = defaultWindowSize
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultPrefix
	}

	return NewSlidingWindowLimiter(params.Client, limit, window, prefix)
}

func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (*service.RateLimitResult, error) {
	now := l.now()
	redisKey := l.prefix + key

	raw, err := slidingWindowScript.Run(ctx, l.client, []string{redisKey, redisKey + ":seq"},
		now.UnixMilli(),
		now.Add(-l.window).UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, errors.Wrap(err, "failed to run rate limit script")
	}
	if len(raw) < 3 {
		return nil, errors.Errorf("unexpected rate limit result length %d", len(raw))
	}

	result := &service.RateLimitResult{
		Allowed:   raw[0] == 1,
		Limit:     l.limit,
		Remaining: int(raw[1]),
		ResetAt:   now.Add(l.window),
	}
	if !result.Allowed && raw[2] > 0 {
		result.RetryAfter = time.Duration(raw[2]) * time.Millisecond
	}

	return result, nil
}

// Unlimited admits every request.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (*service.RateLimitResult, error) {
	return &service.RateLimitResult{Allowed: true, Limit: -1, Remaining: -1}, nil
}
