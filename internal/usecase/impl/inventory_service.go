package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/listing"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const defaultLedgerLimit = 50

type inventoryService struct {
	txManager     repository.TransactionManager
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	cache         service.CatalogCache
	now           func() time.Time
	logger        *slog.Logger
}

type InventoryServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	ProductRepo   repository.ProductRepository
	InventoryRepo repository.InventoryRepository
	Cache         service.CatalogCache
	Logger        *slog.Logger
}

func NewInventoryService(params InventoryServiceParams) usecase.InventoryUsecase {
	return &inventoryService{
		txManager:     params.TxManager,
		productRepo:   params.ProductRepo,
		inventoryRepo: params.InventoryRepo,
		cache:         params.Cache,
		now:           nowUTC,
		logger:        params.Logger,
	}
}

func (srv *inventoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List filters by name/sku/brand and stock status. Stats always cover every product.
func (srv *inventoryService) List(ctx context.Context, filter usecase.InventoryFilter) (*usecase.InventoryView, error) {
	products, err := srv.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := listing.Apply(products, nil,
		func(p *entity.Product) bool { return listing.ContainsFold(filter.Query, p.Name, p.SKU, p.Brand) },
		listing.Equals(filter.Status, func(p *entity.Product) string { return string(p.StockStatus()) }),
	)

	return &usecase.InventoryView{Products: filtered, Stats: inventoryStats(products)}, nil
}

func inventoryStats(products []*entity.Product) usecase.InventoryStats {
	stats := usecase.InventoryStats{TotalProducts: len(products), TotalValue: decimal.Zero}
	for _, p := range products {
		switch p.StockStatus() {
		case entity.StockInStock:
			stats.InStock++
		case entity.StockLowStock:
			stats.LowStock++
		case entity.StockOutOfStock:
			stats.OutOfStock++
		}
		stats.TotalValue = stats.TotalValue.Add(p.StockValue())
	}

	return stats
}

func (srv *inventoryService) Adjust(ctx context.Context, actorID, productID uuid.UUID, direction entity.StockDirection, amount int) (*entity.Product, error) {
	if amount < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("amount cannot be negative")
	}
	if direction != entity.StockAdd && direction != entity.StockSubtract {
		return nil, domainerrors.ErrValidationFailed.WithDetails("direction must be add or subtract")
	}

	products, err := srv.change(ctx, actorID, []uuid.UUID{productID}, func(p *entity.Product, now time.Time) int {
		return p.Adjust(direction, amount, now)
	})
	if err != nil {
		return nil, err
	}

	return products[0], nil
}

// BatchAdjust applies one signed delta to every selected product atomically.
func (srv *inventoryService) BatchAdjust(ctx context.Context, actorID uuid.UUID, productIDs []uuid.UUID, delta int) ([]*entity.Product, error) {
	if len(productIDs) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("at least one product is required")
	}

	return srv.change(ctx, actorID, productIDs, func(p *entity.Product, now time.Time) int {
		return p.ApplyStockDelta(delta, now)
	})
}

func (srv *inventoryService) MarkSoldOut(ctx context.Context, actorID, productID uuid.UUID) (*entity.Product, error) {
	products, err := srv.change(ctx, actorID, []uuid.UUID{productID}, func(p *entity.Product, _ time.Time) int {
		return p.MarkSoldOut()
	})
	if err != nil {
		return nil, err
	}

	return products[0], nil
}

func (srv *inventoryService) SetThreshold(ctx context.Context, productID uuid.UUID, threshold int) (*entity.Product, error) {
	if threshold < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("threshold cannot be negative")
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	product.LowStockThreshold = threshold
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateCatalog(ctx, srv.cache, srv.log(ctx))

	return product, nil
}

func (srv *inventoryService) Ledger(ctx context.Context, productID *uuid.UUID, limit int) ([]*entity.InventoryEntry, error) {
	if limit <= 0 {
		limit = defaultLedgerLimit
	}

	return srv.inventoryRepo.List(ctx, productID, min(limit, maxPageSize))
}

// change runs mutate on each product in one transaction and records every
// non-zero applied change in the ledger.
func (srv *inventoryService) change(
	ctx context.Context,
	actorID uuid.UUID,
	productIDs []uuid.UUID,
	mutate func(p *entity.Product, now time.Time) int,
) ([]*entity.Product, error) {
	now := srv.now()
	updated := make([]*entity.Product, 0, len(productIDs))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		entries := make([]*entity.InventoryEntry, 0, len(productIDs))

		for _, id := range productIDs {
			product, err := productRepo.FindByID(ctx, id)
			if err != nil {
				return translateNotFound(err)
			}

			applied := mutate(product, now)
			if err := productRepo.Update(ctx, product); err != nil {
				return err
			}
			updated = append(updated, product)

			if applied != 0 {
				entries = append(entries, &entity.InventoryEntry{
					ProductID: product.ID,
					Change:    applied,
					Reason:    entity.ReasonForChange(applied),
					CreatedBy: &actorID,
				})
			}
		}

		if len(entries) == 0 {
			return nil
		}

		return repoFactory.InventoryRepo().Append(ctx, entries...)
	})
	if err != nil {
		srv.log(ctx).Warn("Stock change failed", slog.Any("productIDs", productIDs), slog.Any("error", err))

		return nil, err
	}

	invalidateCatalog(ctx, srv.cache, srv.log(ctx))
	srv.log(ctx).Info("Stock changed", slog.Int("products", len(updated)), slog.Any("actorID", actorID))

	return updated, nil
}
