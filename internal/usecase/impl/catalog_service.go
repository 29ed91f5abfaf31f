package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/listing"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type catalogService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	reviewRepo   repository.ReviewRepository
	wishlistRepo repository.WishlistRepository
	cache        service.CatalogCache
	logger       *slog.Logger
}

type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	ReviewRepo   repository.ReviewRepository
	WishlistRepo repository.WishlistRepository
	Cache        service.CatalogCache
	Logger       *slog.Logger
}

func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		reviewRepo:   params.ReviewRepo,
		wishlistRepo: params.WishlistRepo,
		cache:        params.Cache,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns every product, served through the catalog cache.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.cache.Products(ctx, srv.productRepo.ListAll)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, translateNotFound(err)
	}

	return product, nil
}

// Catalog is the shopper view: active products narrowed by name, category
// name and list price range.
func (srv *catalogService) Catalog(ctx context.Context, filter usecase.CatalogFilter) ([]*entity.Product, error) {
	products, err := srv.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	preds := []listing.Predicate[*entity.Product]{
		func(p *entity.Product) bool { return p.IsActive },
		func(p *entity.Product) bool { return listing.ContainsFold(filter.Query, p.Name) },
		listing.Equals(filter.Category, (*entity.Product).CategoryName),
	}
	if filter.MinPrice != nil {
		preds = append(preds, func(p *entity.Product) bool { return p.Price.GreaterThanOrEqual(*filter.MinPrice) })
	}
	if filter.MaxPrice != nil {
		preds = append(preds, func(p *entity.Product) bool { return p.Price.LessThanOrEqual(*filter.MaxPrice) })
	}

	return listing.Apply(products, nil, preds...), nil
}

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return srv.categoryRepo.ListAll(ctx)
}

func (srv *catalogService) CreateCategory(ctx context.Context, input usecase.CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("category name is required")
	}

	slug := slugify(input.Slug)
	if slug == "" {
		slug = slugify(name)
	}

	if input.ParentID != nil {
		if _, err := srv.categoryRepo.FindByID(ctx, *input.ParentID); err != nil {
			return nil, translateNotFound(err)
		}
	}

	category := &entity.Category{
		Name:        name,
		Slug:        slug,
		ParentID:    input.ParentID,
		Description: strings.TrimSpace(input.Description),
	}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// AddReview stores the review and folds its rating into the product aggregate.
func (srv *catalogService) AddReview(ctx context.Context, userID, productID uuid.UUID, input usecase.ReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5")
	}

	review := &entity.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   strings.TrimSpace(input.Comment),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			return translateNotFound(err)
		}
		if err := repoFactory.ReviewRepo().Create(ctx, review); err != nil {
			return err
		}
		product.AddRating(review.Rating)

		return productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	invalidateCatalog(ctx, srv.cache, srv.log(ctx))
	srv.log(ctx).Debug("Review added", slog.Any("productID", productID), slog.Int("rating", review.Rating))

	return review, nil
}

func (srv *catalogService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		return nil, translateNotFound(err)
	}

	return srv.reviewRepo.ListByProduct(ctx, productID)
}

func (srv *catalogService) Wishlist(ctx context.Context, userID uuid.UUID) (*entity.Wishlist, error) {
	ids, err := srv.wishlistRepo.ProductIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	products, err := srv.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &entity.Wishlist{UserID: userID, ProductIDs: ids, Products: products}, nil
}

func (srv *catalogService) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) (*entity.Wishlist, error) {
	if _, err := srv.productRepo.FindByID(ctx, productID); err != nil {
		return nil, translateNotFound(err)
	}
	if err := srv.wishlistRepo.Add(ctx, userID, productID); err != nil {
		return nil, err
	}

	return srv.Wishlist(ctx, userID)
}

func (srv *catalogService) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) (*entity.Wishlist, error) {
	if err := srv.wishlistRepo.Remove(ctx, userID, productID); err != nil {
		return nil, err
	}

	return srv.Wishlist(ctx, userID)
}

// slugify lowercases s and joins its alphanumeric runs with '-'.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
