package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerFilter struct {
	Query  string
	Role   string
	Status string // active | inactive
	Sort   string // newest | oldest | most-orders | highest-spent
}

type CustomerStats struct {
	Total        int
	Active       int
	Inactive     int
	TotalOrders  int
	TotalRevenue decimal.Decimal
}

type CustomerView struct {
	Customers []*entity.CustomerSummary
	Stats     CustomerStats
}

// CustomerUsecase is the admin customers table.
type CustomerUsecase interface {
	List(ctx context.Context, filter CustomerFilter) (*CustomerView, error)
	ToggleActive(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

type ProductFilter struct {
	Query    string
	Category string // category ID
	Status   string // active | inactive | in-stock | out-of-stock
}

// ProductInput is the admin product form. On update, nil pointer fields are left untouched.
type ProductInput struct {
	Name              *string
	Slug              *string
	Description       *entity.ProductDescription
	Price             *decimal.Decimal
	Discount          *int
	Currency          *string
	CategoryID        *uuid.UUID
	ClearCategory     bool
	Brand             *string
	SKU               *string
	Images            []entity.ProductImage
	Stock             *int
	LowStockThreshold *int
	IsActive          *bool
}

// ProductAdminUsecase is the admin product management page.
type ProductAdminUsecase interface {
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Create(ctx context.Context, input ProductInput) (*entity.Product, error)
	Update(ctx context.Context, productID uuid.UUID, input ProductInput) (*entity.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	ToggleActive(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
}
