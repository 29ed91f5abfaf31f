package service

import (
	"context"

	"storefront/internal/domain/entity"
)

// CatalogCache fronts the public product list.
type CatalogCache interface {
	// Products returns the cached list, calling load on a miss.
	Products(ctx context.Context, load func(context.Context) ([]*entity.Product, error)) ([]*entity.Product, error)
	// Invalidate drops the cached list after any catalog or stock write.
	Invalidate(ctx context.Context) error
}
