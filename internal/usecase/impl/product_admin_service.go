package impl

import (
	"context"
	"log/slog"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/listing"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	productStatusActive   = "active"
	productStatusInactive = "inactive"
)

type productAdminService struct {
	productRepo      repository.ProductRepository
	categoryRepo     repository.CategoryRepository
	cache            service.CatalogCache
	currency         string
	defaultThreshold int
	logger           *slog.Logger
}

type ProductAdminServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Cache        service.CatalogCache
	Config       *config.Config
	Logger       *slog.Logger
}

func NewProductAdminService(params ProductAdminServiceParams) usecase.ProductAdminUsecase {
	threshold := 10
	if params.Config != nil && params.Config.Store != nil && params.Config.Store.DefaultLowStockThreshold > 0 {
		threshold = params.Config.Store.DefaultLowStockThreshold
	}

	return &productAdminService{
		productRepo:      params.ProductRepo,
		categoryRepo:     params.CategoryRepo,
		cache:            params.Cache,
		currency:         storeCurrency(params.Config),
		defaultThreshold: threshold,
		logger:           params.Logger,
	}
}

func (srv *productAdminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List reads straight from the database so admins never see a stale cache.
func (srv *productAdminService) List(ctx context.Context, filter usecase.ProductFilter) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return listing.Apply(products, nil,
		func(p *entity.Product) bool { return listing.ContainsFold(filter.Query, p.Name, p.Brand) },
		categoryPredicate(filter.Category),
		productStatusPredicate(filter.Status),
	), nil
}

func categoryPredicate(categoryID string) listing.Predicate[*entity.Product] {
	if listing.IsAll(categoryID) {
		return nil
	}

	return func(p *entity.Product) bool {
		return p.CategoryID != nil && strings.EqualFold(p.CategoryID.String(), strings.TrimSpace(categoryID))
	}
}

func productStatusPredicate(status string) listing.Predicate[*entity.Product] {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case productStatusActive:
		return func(p *entity.Product) bool { return p.IsActive }
	case productStatusInactive:
		return func(p *entity.Product) bool { return !p.IsActive }
	case string(entity.StockInStock):
		return func(p *entity.Product) bool { return p.Stock > 0 }
	case string(entity.StockOutOfStock):
		return func(p *entity.Product) bool { return p.Stock == 0 }
	default:
		return nil
	}
}

func (srv *productAdminService) Create(ctx context.Context, input usecase.ProductInput) (*entity.Product, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" || input.Price == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("name and price are required")
	}

	product := &entity.Product{
		Currency:          srv.currency,
		LowStockThreshold: srv.defaultThreshold,
		IsActive:          true,
	}
	if err := srv.apply(ctx, product, input); err != nil {
		return nil, err
	}
	if product.Slug == "" {
		product.Slug = slugify(product.Name)
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.String("slug", product.Slug))

	return srv.reload(ctx, product.ID)
}

func (srv *productAdminService) Update(ctx context.Context, productID uuid.UUID, input usecase.ProductInput) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}
	if err := srv.apply(ctx, product, input); err != nil {
		return nil, err
	}

	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return srv.reload(ctx, productID)
}

func (srv *productAdminService) Delete(ctx context.Context, productID uuid.UUID) error {
	if err := srv.productRepo.Delete(ctx, productID); err != nil {
		return translateNotFound(err)
	}

	invalidateCatalog(ctx, srv.cache, srv.log(ctx))
	srv.log(ctx).Info("Product deleted", slog.Any("productID", productID))

	return nil
}

func (srv *productAdminService) ToggleActive(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	product.IsActive = !product.IsActive
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	invalidateCatalog(ctx, srv.cache, srv.log(ctx))

	return product, nil
}

// apply copies the set fields of input onto product and reprices it.
func (srv *productAdminService) apply(ctx context.Context, product *entity.Product, input usecase.ProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return domainerrors.ErrValidationFailed.WithDetails("name cannot be empty")
		}
		product.Name = name
	}
	if input.Slug != nil {
		product.Slug = slugify(*input.Slug)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return domainerrors.ErrValidationFailed.WithDetails("price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Discount != nil {
		if *input.Discount < 0 || *input.Discount > 100 {
			return domainerrors.ErrValidationFailed.WithDetails("discount must be between 0 and 100")
		}
		product.Discount = *input.Discount
	}
	if input.Currency != nil && strings.TrimSpace(*input.Currency) != "" {
		product.Currency = strings.ToUpper(strings.TrimSpace(*input.Currency))
	}
	if input.ClearCategory {
		product.CategoryID = nil
		product.Category = nil
	} else if input.CategoryID != nil {
		category, err := srv.categoryRepo.FindByID(ctx, *input.CategoryID)
		if err != nil {
			return translateNotFound(err)
		}
		product.CategoryID = &category.ID
		product.Category = category
	}
	if input.Brand != nil {
		product.Brand = strings.TrimSpace(*input.Brand)
	}
	if input.SKU != nil {
		product.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return domainerrors.ErrValidationFailed.WithDetails("stock cannot be negative")
		}
		product.Stock = *input.Stock
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return domainerrors.ErrValidationFailed.WithDetails("low stock threshold cannot be negative")
		}
		product.LowStockThreshold = *input.LowStockThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	product.Reprice()

	return nil
}

func (srv *productAdminService) reload(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	invalidateCatalog(ctx, srv.cache, srv.log(ctx))

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return product, nil
}
