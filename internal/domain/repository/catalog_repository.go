package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductRepository loads products with their category resolved.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)
	ListAll(ctx context.Context) ([]*entity.Product, error)
	Count(ctx context.Context) (int64, error)

	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	ListAll(ctx context.Context) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
}

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)
}

type WishlistRepository interface {
	ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// Add is idempotent.
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
