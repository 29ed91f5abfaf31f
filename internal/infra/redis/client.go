// Package redis provides the shared go-redis client used by the catalog
// cache and the rate limiter.
package redis

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/lifecycle"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New returns nil when no redis section is configured; consumers then fall
// back to their uncached or unlimited behaviour. An unreachable server is
// logged, not fatal, for the same reason.
func New(params Params) *goredis.Client {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, cache and rate limiting disabled")

		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				params.Logger.Warn("Redis ping failed", slog.String("addr", cfg.Addr), slog.Any("error", err))
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
