package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type InventoryHandlerParams struct {
	fx.In

	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

type InventoryHandler struct {
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

func NewInventoryHandler(params InventoryHandlerParams) *InventoryHandler {
	return &InventoryHandler{
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

type InventoryQuery struct {
	Query  string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=all in-stock low-stock out-of-stock"`
}

type AdjustStockRequest struct {
	Direction entity.StockDirection `json:"direction" validate:"required,oneof=add subtract"`
	Amount    int                   `json:"amount" validate:"min=0"`
}

type BatchAdjustRequest struct {
	ProductIDs []uuid.UUID `json:"productIds" validate:"required,min=1"`
	Delta      int         `json:"delta"`
}

type ThresholdRequest struct {
	Threshold *int `json:"threshold" validate:"required,min=0"`
}

type LedgerQuery struct {
	ProductID string `query:"productId" validate:"omitempty,uuid"`
	Limit     int    `query:"limit" validate:"min=0"`
}

type InventoryStatsResponse struct {
	TotalProducts int    `json:"totalProducts"`
	InStock       int    `json:"inStock"`
	LowStock      int    `json:"lowStock"`
	OutOfStock    int    `json:"outOfStock"`
	TotalValue    string `json:"totalValue"`
}

type InventoryListResponse struct {
	Products []*ProductResponse     `json:"products"`
	Stats    InventoryStatsResponse `json:"stats"`
}

// List serves GET /api/admin/inventory?q=&status=.
func (h *InventoryHandler) List(c echo.Context) error {
	var query InventoryQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	view, err := h.inventoryUC.List(c.Request().Context(), usecase.InventoryFilter{
		Query:  query.Query,
		Status: query.Status,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, InventoryListResponse{
		Products: toProductResponses(view.Products),
		Stats: InventoryStatsResponse{
			TotalProducts: view.Stats.TotalProducts,
			InStock:       view.Stats.InStock,
			LowStock:      view.Stats.LowStock,
			OutOfStock:    view.Stats.OutOfStock,
			TotalValue:    view.Stats.TotalValue.String(),
		},
	})
}

func (h *InventoryHandler) Adjust(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	var req AdjustStockRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	product, err := h.inventoryUC.Adjust(c.Request().Context(), actorID, productID, req.Direction, req.Amount)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

func (h *InventoryHandler) BatchAdjust(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req BatchAdjustRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	products, err := h.inventoryUC.BatchAdjust(c.Request().Context(), actorID, req.ProductIDs, req.Delta)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponses(products))
}

func (h *InventoryHandler) MarkSoldOut(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	product, err := h.inventoryUC.MarkSoldOut(c.Request().Context(), actorID, productID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

func (h *InventoryHandler) SetThreshold(c echo.Context) error {
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	var req ThresholdRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	product, err := h.inventoryUC.SetThreshold(c.Request().Context(), productID, *req.Threshold)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product))
}

// Ledger serves GET /api/admin/inventory/ledger?productId=&limit=.
func (h *InventoryHandler) Ledger(c echo.Context) error {
	var query LedgerQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	var productID *uuid.UUID
	if query.ProductID != "" {
		id, err := uuid.Parse(query.ProductID)
		if err != nil {
			return response.AppError(c, domainerrors.ErrValidationFailed.WithDetails("invalid productId"))
		}
		productID = &id
	}

	entries, err := h.inventoryUC.Ledger(c.Request().Context(), productID, query.Limit)
	if err != nil {
		return response.AppError(c, err)
	}

	out := make([]*InventoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toInventoryEntryResponse(entry))
	}

	return response.Success(c, http.StatusOK, out)
}
