package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type AdminHandlerParams struct {
	fx.In

	ProductUC  usecase.ProductAdminUsecase
	CustomerUC usecase.CustomerUsecase
	Logger     *slog.Logger
}

// AdminHandler serves back-office product editing and the customer table.
type AdminHandler struct {
	productUC  usecase.ProductAdminUsecase
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		productUC:  params.ProductUC,
		customerUC: params.CustomerUC,
		logger:     params.Logger,
	}
}

type AdminProductQuery struct {
	Query    string `query:"q"`
	Category string `query:"category" validate:"omitempty,uuid|eq=all"`
	Status   string `query:"status" validate:"omitempty,oneof=all active inactive in-stock out-of-stock"`
}

// ProductRequest is shared by create and update; absent fields keep their
// current value on update.
type ProductRequest struct {
	Name              *string                    `json:"name" validate:"omitnil,min=1,max=200"`
	Slug              *string                    `json:"slug"`
	Description       *entity.ProductDescription `json:"description"`
	Price             *decimal.Decimal           `json:"price"`
	Discount          *int                       `json:"discount" validate:"omitnil,min=0,max=100"`
	Currency          *string                    `json:"currency" validate:"omitnil,len=3"`
	CategoryID        *uuid.UUID                 `json:"categoryId"`
	ClearCategory     bool                       `json:"clearCategory"`
	Brand             *string                    `json:"brand"`
	SKU               *string                    `json:"sku"`
	Images            []entity.ProductImage      `json:"images"`
	Stock             *int                       `json:"stock" validate:"omitnil,min=0"`
	LowStockThreshold *int                       `json:"lowStockThreshold" validate:"omitnil,min=0"`
	IsActive          *bool                      `json:"isActive"`
}

func (r ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:              r.Name,
		Slug:              r.Slug,
		Description:       r.Description,
		Price:             r.Price,
		Discount:          r.Discount,
		Currency:          r.Currency,
		CategoryID:        r.CategoryID,
		ClearCategory:     r.ClearCategory,
		Brand:             r.Brand,
		SKU:               r.SKU,
		Images:            r.Images,
		Stock:             r.Stock,
		LowStockThreshold: r.LowStockThreshold,
		IsActive:          r.IsActive,
	}
}

type CustomerQuery struct {
	Query  string `query:"q"`
	Role   string `query:"role" validate:"omitempty,oneof=all user admin"`
	Status string `query:"status" validate:"omitempty,oneof=all active inactive"`
	Sort   string `query:"sort" validate:"omitempty,oneof=newest oldest most-orders highest-spent"`
}

type CustomerStatsResponse struct {
	Total        int             `json:"total"`
	Active       int             `json:"active"`
	Inactive     int             `json:"inactive"`
	TotalOrders  int             `json:"totalOrders"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

type CustomerListResponse struct {
	Customers []*CustomerResponse   `json:"customers"`
	Stats     CustomerStatsResponse `json:"stats"`
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	var query AdminProductQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	products, err := h.productUC.List(c.Request().Context(), usecase.ProductFilter{
		Query:    query.Query,
		Category: query.Category,
		Status:   query.Status,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products))
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	product, err := h.productUC.Create(c.Request().Context(), req.input())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product))
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	var req ProductRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	product, err := h.productUC.Update(c.Request().Context(), productID, req.input())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

func (h *AdminHandler) DeleteProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	if err := h.productUC.Delete(c.Request().Context(), productID); err != nil {
		return response.AppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ToggleProduct(c echo.Context) error {
	productID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	product, err := h.productUC.ToggleActive(c.Request().Context(), productID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// ListCustomers serves GET /api/admin/customers?q=&role=&status=&sort=.
func (h *AdminHandler) ListCustomers(c echo.Context) error {
	var query CustomerQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	view, err := h.customerUC.List(c.Request().Context(), usecase.CustomerFilter{
		Query:  query.Query,
		Role:   query.Role,
		Status: query.Status,
		Sort:   query.Sort,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	customers := make([]*CustomerResponse, 0, len(view.Customers))
	for _, summary := range view.Customers {
		customers = append(customers, toCustomerResponse(summary))
	}

	return response.Success(c, http.StatusOK, CustomerListResponse{
		Customers: customers,
		Stats: CustomerStatsResponse{
			Total:        view.Stats.Total,
			Active:       view.Stats.Active,
			Inactive:     view.Stats.Inactive,
			TotalOrders:  view.Stats.TotalOrders,
			TotalRevenue: view.Stats.TotalRevenue,
		},
	})
}

func (h *AdminHandler) ToggleCustomer(c echo.Context) error {
	userID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	user, err := h.customerUC.ToggleActive(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user))
}
