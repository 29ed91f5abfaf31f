package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) query(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Category")
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.query(ctx).First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}

	var rows []*model.ProductModel
	if err := repo.query(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find products by ids")
	}

	return mapSlice(rows, toProductDomain), nil
}

// ListAll returns every product, newest first.
func (repo *productRepository) ListAll(ctx context.Context) ([]*entity.Product, error) {
	var rows []*model.ProductModel
	if err := repo.query(ctx).Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return mapSlice(rows, toProductDomain), nil
}

func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error

	return count, errors.Wrap(err, "failed to count products")
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to update product")
	}
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func translateProductWriteError(err error, details string) error {
	switch {
	case isUniqueConstraintViolation(err):
		return domainerrors.ErrSlugAlreadyExists.WrapMessage("product slug already exists")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrCategoryNotFound.WrapMessage("product category does not exist")
	case isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WithDetails("stock cannot be negative")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).First(&categoryM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) ListAll(ctx context.Context) ([]*entity.Category, error) {
	var rows []*model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return mapSlice(rows, toCategoryDomain), nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := fromCategoryDomain(category)

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugAlreadyExists.WrapMessage("category slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := &model.ReviewModel{
		UUIDKey:   model.UUIDKey{ID: review.ID},
		ProductID: review.ProductID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}

	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.ID = reviewM.ID
	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*entity.Review, error) {
	var rows []*model.ReviewModel
	err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return mapSlice(rows, toReviewDomain), nil
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (repo *wishlistRepository) ProductIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := repo.db.WithContext(ctx).
		Model(&model.WishlistItemModel{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to load wishlist")
	}

	return ids, nil
}

func (repo *wishlistRepository) Add(ctx context.Context, userID, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.WishlistItemModel{UserID: userID, ProductID: productID}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to add wishlist item")
	}

	return nil
}

func (repo *wishlistRepository) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Delete(&model.WishlistItemModel{}, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to remove wishlist item")
	}

	return nil
}

func (repo *wishlistRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Delete(&model.WishlistItemModel{}, "user_id = ?", userID).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to clear wishlist")
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	desc := data.Description.Data()
	images := make([]entity.ProductImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, entity.ProductImage{URL: img.URL, Alt: img.Alt})
	}

	return &entity.Product{
		ID:   data.ID,
		Name: data.Name,
		Slug: data.Slug,
		Description: entity.ProductDescription{
			Features:       desc.Features,
			Details:        desc.Details,
			Specifications: desc.Specifications,
		},
		Price:             data.Price,
		Discount:          data.Discount,
		FinalPrice:        data.FinalPrice,
		Currency:          data.Currency,
		CategoryID:        data.CategoryID,
		Category:          toCategoryDomain(data.Category),
		Brand:             data.Brand,
		SKU:               data.SKU,
		Images:            images,
		Stock:             data.Stock,
		LowStockThreshold: data.LowStockThreshold,
		LastRestockedAt:   data.LastRestockedAt,
		IsActive:          data.IsActive,
		RatingAvg:         data.RatingAvg,
		RatingCount:       data.RatingCount,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	images := make([]model.ProductImageJSON, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, model.ProductImageJSON{URL: img.URL, Alt: img.Alt})
	}

	return &model.ProductModel{
		UUIDKey: model.UUIDKey{ID: data.ID},
		Name:    data.Name,
		Slug:    data.Slug,
		Description: datatypes.NewJSONType(model.ProductDescriptionJSON{
			Features:       data.Description.Features,
			Details:        data.Description.Details,
			Specifications: data.Description.Specifications,
		}),
		Price:             data.Price,
		Discount:          data.Discount,
		FinalPrice:        data.FinalPrice,
		Currency:          data.Currency,
		CategoryID:        data.CategoryID,
		Brand:             data.Brand,
		SKU:               data.SKU,
		Images:            datatypes.NewJSONSlice(images),
		Stock:             data.Stock,
		LowStockThreshold: data.LowStockThreshold,
		LastRestockedAt:   data.LastRestockedAt,
		IsActive:          data.IsActive,
		RatingAvg:         data.RatingAvg,
		RatingCount:       data.RatingCount,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		ParentID:    data.ParentID,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		UUIDKey:     model.UUIDKey{ID: data.ID},
		Name:        data.Name,
		Slug:        data.Slug,
		ParentID:    data.ParentID,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toReviewDomain(data *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        data.ID,
		ProductID: data.ProductID,
		UserID:    data.UserID,
		Rating:    data.Rating,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
