package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandlerParams struct {
	fx.In

	DB     *gorm.DB
	Redis  *redis.Client `optional:"true"`
	Logger *slog.Logger
}

// HealthHandler reports whether the process and its backing stores respond.
type HealthHandler struct {
	db     *gorm.DB
	redis  *redis.Client
	logger *slog.Logger
}

func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		db:     params.DB,
		redis:  params.Redis,
		logger: params.Logger,
	}
}

type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	result := HealthResponse{Status: "ok", Services: map[string]string{}}

	result.Services["postgres"] = h.probe(ctx, "postgres", func(ctx context.Context) error {
		sqlDB, err := h.db.DB()
		if err != nil {
			return err
		}

		return sqlDB.PingContext(ctx)
	})
	if h.redis != nil {
		result.Services["redis"] = h.probe(ctx, "redis", func(ctx context.Context) error {
			return h.redis.Ping(ctx).Err()
		})
	}

	status := http.StatusOK
	for _, state := range result.Services {
		if state != "ok" {
			result.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	return response.Success(c, status, result)
}

func (h *HealthHandler) probe(ctx context.Context, name string, ping func(context.Context) error) string {
	if err := ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "Health probe failed", slog.String("service", name), slog.Any("error", err))

		return "down"
	}

	return "ok"
}
