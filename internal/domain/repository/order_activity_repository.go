package repository

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

type OrderActivityRepository interface {
	// Record inserts the activity unless its MessageID is already stored and
	// reports whether a row was written.
	Record(ctx context.Context, activity *entity.OrderActivity) (bool, error)
	// ListByOrder returns an order's activity oldest first.
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*entity.OrderActivity, error)
}
