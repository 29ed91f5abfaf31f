package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type OrderHandlerParams struct {
	fx.In

	OrderUC    usecase.OrderUsecase
	ActivityUC usecase.OrderActivityUsecase
	Logger     *slog.Logger
}

// OrderHandler serves shoppers' order history and the admin order workflow.
type OrderHandler struct {
	orderUC    usecase.OrderUsecase
	activityUC usecase.OrderActivityUsecase
	logger     *slog.Logger
}

func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC:    params.OrderUC,
		activityUC: params.ActivityUC,
		logger:     params.Logger,
	}
}

type OrderQuery struct {
	Query  string `query:"q"`
	Status string `query:"status" validate:"omitempty,oneof=all pending paid shipped delivered cancelled refunded"`
	Sort   string `query:"sort" validate:"omitempty,oneof=newest oldest highest lowest"`
}

type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

type OrderStatsResponse struct {
	Total        int                        `json:"total"`
	ByStatus     map[entity.OrderStatus]int `json:"byStatus"`
	TotalRevenue string                     `json:"totalRevenue"`
}

type OrderListResponse struct {
	Orders []*OrderResponse   `json:"orders"`
	Stats  OrderStatsResponse `json:"stats"`
}

type DashboardResponse struct {
	TotalSales     string           `json:"totalSales"`
	TotalOrders    int              `json:"totalOrders"`
	TotalCustomers int64            `json:"totalCustomers"`
	TotalProducts  int64            `json:"totalProducts"`
	RecentOrders   []*OrderResponse `json:"recentOrders"`
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	orders, err := h.orderUC.MyOrders(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponses(orders))
}

func (h *OrderHandler) MyOrder(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	order, err := h.orderUC.MyOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

// TrackingQR returns the order's tracking code as a PNG image.
func (h *OrderHandler) TrackingQR(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	png, err := h.orderUC.TrackingQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=300")

	return c.Blob(http.StatusOK, "image/png", png)
}

// List serves GET /api/admin/orders?q=&status=&sort=.
func (h *OrderHandler) List(c echo.Context) error {
	var query OrderQuery
	if err := bindRequest(c, &query); err != nil {
		return response.AppError(c, err)
	}

	view, err := h.orderUC.List(c.Request().Context(), usecase.OrderFilter{
		Query:  query.Query,
		Status: query.Status,
		Sort:   query.Sort,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, OrderListResponse{
		Orders: toOrderResponses(view.Orders),
		Stats: OrderStatsResponse{
			Total:        view.Stats.Total,
			ByStatus:     view.Stats.ByStatus,
			TotalRevenue: view.Stats.TotalRevenue.String(),
		},
	})
}

func (h *OrderHandler) Get(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	order, err := h.orderUC.Get(c.Request().Context(), orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), orderID, req.Status)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	order, err := h.orderUC.Cancel(c.Request().Context(), orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) Refund(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	order, err := h.orderUC.Refund(c.Request().Context(), orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order))
}

func (h *OrderHandler) Dashboard(c echo.Context) error {
	dash, err := h.orderUC.Dashboard(c.Request().Context())
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, DashboardResponse{
		TotalSales:     dash.TotalSales.String(),
		TotalOrders:    dash.TotalOrders,
		TotalCustomers: dash.TotalCustomers,
		TotalProducts:  dash.TotalProducts,
		RecentOrders:   toOrderResponses(dash.RecentOrders),
	})
}

// Timeline lists the order events the worker has recorded, oldest first.
func (h *OrderHandler) Timeline(c echo.Context) error {
	orderID, err := pathUUID(c, "id")
	if err != nil {
		return response.AppError(c, err)
	}

	activity, err := h.activityUC.Timeline(c.Request().Context(), orderID)
	if err != nil {
		return response.AppError(c, err)
	}

	out := make([]*OrderActivityResponse, 0, len(activity))
	for _, a := range activity {
		out = append(out, toOrderActivityResponse(a))
	}

	return response.Success(c, http.StatusOK, out)
}
