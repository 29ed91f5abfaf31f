package cache

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const (
	productListKey = "products:all"

	defaultCatalogTTL    = 5 * time.Minute
	defaultCatalogPrefix = "storefront:catalog:"
)

type CatalogCacheParams struct {
	fx.In

	Config *config.Config
	Client *redis.Client `optional:"true"`
	Logger *slog.Logger
}

// NewCatalogCache returns a pass-through cache when caching is disabled or
// Redis is not configured.
func NewCatalogCache(params CatalogCacheParams) service.CatalogCache {
	cfg := params.Config.CatalogCache
	if cfg == nil || !cfg.Enabled || params.Client == nil {
		return passthroughCache{}
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = defaultCatalogPrefix
	}

	return NewProductListCache(New(params.Client, prefix, ttl), params.Logger)
}

// ProductListCache is cache-aside for the public product list. Concurrent
// misses share one load. Redis failures fall through to the loader.
type ProductListCache struct {
	cache  *Cache
	group  singleflight.Group
	logger *slog.Logger
}

func NewProductListCache(cache *Cache, logger *slog.Logger) *ProductListCache {
	return &ProductListCache{cache: cache, logger: logger}
}

func (c *ProductListCache) Products(ctx context.Context, load func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, c.logger)

	var products []*entity.Product
	hit, err := c.cache.Get(ctx, productListKey, &products)
	if err != nil {
		logger.Warn("Catalog cache read failed", slog.Any("error", err))
	}
	if hit {
		return products, nil
	}

	v, err, _ := c.group.Do(productListKey, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.cache.Set(ctx, productListKey, loaded); err != nil {
			logger.Warn("Catalog cache write failed", slog.Any("error", err))
		}

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*entity.Product), nil
}

func (c *ProductListCache) Invalidate(ctx context.Context) error {
	return c.cache.Delete(ctx, productListKey)
}

func (c *ProductListCache) Stats() StatsSnapshot {
	return c.cache.Stats()
}

type passthroughCache struct{}

func (passthroughCache) Products(ctx context.Context, load func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error) {
	return load(ctx)
}

func (passthroughCache) Invalidate(context.Context) error {
	return nil
}
