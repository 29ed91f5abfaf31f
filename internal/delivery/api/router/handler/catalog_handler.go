package handler

import (
	"context"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler serves products, categories, reviews and wishlists.
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

type CatalogQuery struct {
	Query    string `query:"q"`
	Category string `query:"category"`
	MinPrice string `query:"minPrice" validate:"omitempty,number"`
	MaxPrice string `query:"maxPrice" validate:"omitempty,number"`
}

type CategoryRequest struct {
	Name        string     `json:"name" validate:"required"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parentId"`
	Description string     `json:"description"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type WishlistResponse struct {
	Products []*ProductResponse `json:"products"`
}

func (h *CatalogHandler) ListProducts(c echo.Context) error {
	products, err := h.catalogUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products))
}

func (h *CatalogHandler) GetProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	product, err := h.catalogUC.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// Catalog serves GET /api/catalog?q=&category=&minPrice=&maxPrice=.
func (h *CatalogHandler) Catalog(c echo.Context) error {
	var query CatalogQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	minPrice, err := optionalDecimal(query.MinPrice, "minPrice")
	if err != nil {
		return response.AppError(c, err)
	}
	maxPrice, err := optionalDecimal(query.MaxPrice, "maxPrice")
	if err != nil {
		return response.AppError(c, err)
	}

	products, err := h.catalogUC.Catalog(c.Request().Context(), usecase.CatalogFilter{
		Query:    query.Query,
		Category: query.Category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products))
}

func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalogUC.ListCategories(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	out := make([]*CategoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req CategoryRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	category, err := h.catalogUC.CreateCategory(c.Request().Context(), usecase.CategoryInput{
		Name:        req.Name,
		Slug:        req.Slug,
		ParentID:    req.ParentID,
		Description: req.Description,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toCategoryResponse(category))
}

func (h *CatalogHandler) AddReview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	var req ReviewRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	review, err := h.catalogUC.AddReview(c.Request().Context(), userID, productID, usecase.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toReviewResponse(review))
}

func (h *CatalogHandler) ListReviews(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	reviews, err := h.catalogUC.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return response.AppError(c, err)
	}

	out := make([]*ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, toReviewResponse(review))
	}

	return response.Success(c, http.StatusOK, out)
}

func (h *CatalogHandler) Wishlist(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	wishlist, err := h.catalogUC.Wishlist(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, WishlistResponse{Products: toProductResponses(wishlist.Products)})
}

func (h *CatalogHandler) AddToWishlist(c echo.Context) error {
	return h.changeWishlist(c, h.catalogUC.AddToWishlist)
}

func (h *CatalogHandler) RemoveFromWishlist(c echo.Context) error {
	return h.changeWishlist(c, h.catalogUC.RemoveFromWishlist)
}

func (h *CatalogHandler) changeWishlist(c echo.Context, change func(context.Context, uuid.UUID, uuid.UUID) (*entity.Wishlist, error)) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	wishlist, err := change(c.Request().Context(), userID, productID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, WishlistResponse{Products: toProductResponses(wishlist.Products)})
}

func optionalDecimal(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(field + " must be a number")
	}

	return &d, nil
}
