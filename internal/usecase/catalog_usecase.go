package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CatalogFilter narrows the storefront catalog. Zero values disable a filter.
type CatalogFilter struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type CategoryInput struct {
	Name        string
	Slug        string
	ParentID    *uuid.UUID
	Description string
}

type ReviewInput struct {
	Rating  int
	Comment string
}

// CatalogUsecase is the shopper-facing read side of the catalog plus reviews and wishlists.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	Catalog(ctx context.Context, filter CatalogFilter) ([]*entity.Product, error)

	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*entity.Category, error)

	AddReview(ctx context.Context, userID, productID uuid.UUID, input ReviewInput) (*entity.Review, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error)

	Wishlist(ctx context.Context, userID uuid.UUID) (*entity.Wishlist, error)
	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) (*entity.Wishlist, error)
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) (*entity.Wishlist, error)
}
