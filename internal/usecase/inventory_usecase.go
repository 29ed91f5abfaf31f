package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryFilter struct {
	Query  string
	Status string
}

// InventoryStats summarises the whole stock on hand, independent of the filter.
type InventoryStats struct {
	TotalProducts int
	InStock       int
	LowStock      int
	OutOfStock    int
	TotalValue    decimal.Decimal
}

type InventoryView struct {
	Products []*entity.Product
	Stats    InventoryStats
}

// InventoryUsecase is the admin stock workflow. actorID is recorded on ledger entries.
type InventoryUsecase interface {
	List(ctx context.Context, filter InventoryFilter) (*InventoryView, error)
	Adjust(ctx context.Context, actorID, productID uuid.UUID, direction entity.StockDirection, amount int) (*entity.Product, error)
	BatchAdjust(ctx context.Context, actorID uuid.UUID, productIDs []uuid.UUID, delta int) ([]*entity.Product, error)
	MarkSoldOut(ctx context.Context, actorID, productID uuid.UUID) (*entity.Product, error)
	SetThreshold(ctx context.Context, productID uuid.UUID, threshold int) (*entity.Product, error)
	Ledger(ctx context.Context, productID *uuid.UUID, limit int) ([]*entity.InventoryEntry, error)
}
