package middleware

import (
	"log/slog"
	"math"
	"strconv"

	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
)

// RateLimitMiddleware throttles credential endpoints per client IP.
type RateLimitMiddleware struct {
	limiter service.RateLimiter
	logger  *slog.Logger
}

func NewRateLimitMiddleware(limiter service.RateLimiter, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, logger: logger}
}

// Limit builds a middleware whose counters are kept under scope.
func (m *RateLimitMiddleware) Limit(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			result, err := m.limiter.Allow(ctx, scope+":"+c.RealIP())
			if err != nil {
				// limiter unavailable, let the request through
				deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Rate limiter unavailable",
					slog.String("scope", scope),
					slog.Any("error", err),
				)

				return next(c)
			}

			if result.Limit >= 0 {
				header := c.Response().Header()
				header.Set(HeaderRateLimitLimit, strconv.Itoa(result.Limit))
				header.Set(HeaderRateLimitRemaining, strconv.Itoa(max(result.Remaining, 0)))
				if !result.ResetAt.IsZero() {
					header.Set(HeaderRateLimitReset, strconv.FormatInt(result.ResetAt.Unix(), 10))
				}
			}

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
				c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(max(retryAfter, 1)))

				return domainerrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
