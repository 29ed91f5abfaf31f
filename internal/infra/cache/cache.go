// Package cache implements cache-aside storage on Redis.
package cache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"storefront/internal/errors"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON values under a key prefix with a default TTL.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  Stats
}

type Stats struct {
	Hits    atomic.Uint64
	Misses  atomic.Uint64
	Sets    atomic.Uint64
	Deletes atomic.Uint64
	Errors  atomic.Uint64
}

type StatsSnapshot struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	Sets    uint64  `json:"sets"`
	Deletes uint64  `json:"deletes"`
	Errors  uint64  `json:"errors"`
	HitRate float64 `json:"hit_rate"`
}

func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get decodes the cached value into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.stats.Misses.Add(1)

			return false, nil
		}
		c.stats.Errors.Add(1)

		return false, errors.Wrap(err, "cache get")
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.stats.Errors.Add(1)

		return false, errors.Wrap(err, "cache unmarshal")
	}
	c.stats.Hits.Add(1)

	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		c.stats.Errors.Add(1)

		return errors.Wrap(err, "cache marshal")
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		c.stats.Errors.Add(1)

		return errors.Wrap(err, "cache set")
	}
	c.stats.Sets.Add(1)

	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.prefix+k)
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		c.stats.Errors.Add(1)

		return errors.Wrap(err, "cache delete")
	}
	c.stats.Deletes.Add(uint64(len(keys)))

	return nil
}

func (c *Cache) Stats() StatsSnapshot {
	hits := c.stats.Hits.Load()
	misses := c.stats.Misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}

	return StatsSnapshot{
		Hits:    hits,
		Misses:  misses,
		Sets:    c.stats.Sets.Load(),
		Deletes: c.stats.Deletes.Load(),
		Errors:  c.stats.Errors.Load(),
		HitRate: hitRate,
	}
}
