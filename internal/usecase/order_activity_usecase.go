package usecase

import (
	"context"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
)

// OrderActivityUsecase keeps the per-order timeline fed by the event worker.
type OrderActivityUsecase interface {
	// Record stores one delivered event. A redelivered message is accepted
	// without writing a second row.
	Record(ctx context.Context, messageID string, event *service.OrderEvent) (*entity.OrderActivity, error)
	Timeline(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderActivity, error)
}
