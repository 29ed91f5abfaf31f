package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// normalizePage clamps paging input to page >= 1 and 1 <= limit <= maxPageSize.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	return page, min(limit, maxPageSize)
}

// pageCount is ceil(total/limit).
func pageCount(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}

	return int((total + int64(limit) - 1) / int64(limit))
}

// translateNotFound maps repository sentinels onto the client-facing errors.
func translateNotFound(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return domainerrors.ErrUserNotFound
	case errors.Is(err, repository.ErrProductNotFound):
		return domainerrors.ErrProductNotFound
	case errors.Is(err, repository.ErrCategoryNotFound):
		return domainerrors.ErrCategoryNotFound
	case errors.Is(err, repository.ErrOrderNotFound):
		return domainerrors.ErrOrderNotFound
	default:
		return err
	}
}

// invalidateCatalog drops the cached product list. A failure only means stale
// reads until the TTL expires, so it is logged and swallowed.
func invalidateCatalog(ctx context.Context, cache service.CatalogCache, logger *slog.Logger) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("Failed to invalidate catalog cache", slog.Any("error", err))
	}
}

// publishOrderEvent sends an order event on a detached context; failures are logged.
func publishOrderEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.OrderEvent) {
	if publisher == nil {
		return
	}

	if event.RequestID == "" {
		event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := publisher.PublishOrderEvent(pubCtx, event); err != nil {
		logger.Warn("Failed to publish order event",
			slog.String("type", event.Type),
			slog.String("orderID", event.OrderID),
			slog.Any("error", err))
	}
}

func newOrderEvent(eventType string, order *entity.Order, previous entity.OrderStatus) *service.OrderEvent {
	return &service.OrderEvent{
		Type:           eventType,
		OrderID:        order.ID.String(),
		UserID:         order.UserID.String(),
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		TotalAmount:    order.TotalAmount.String(),
		Currency:       order.Currency,
		OccurredAt:     time.Now().UTC(),
	}
}
