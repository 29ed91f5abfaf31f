package handler

import (
	"log/slog"
	"net/http"

	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type CartHandlerParams struct {
	fx.In

	CartUC     usecase.CartUsecase
	CheckoutUC usecase.CheckoutUsecase
	Logger     *slog.Logger
}

// CartHandler serves the shopper's cart and the checkout flow built on it.
type CartHandler struct {
	cartUC     usecase.CartUsecase
	checkoutUC usecase.CheckoutUsecase
	logger     *slog.Logger
}

func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC:     params.CartUC,
		checkoutUC: params.CheckoutUC,
		logger:     params.Logger,
	}
}

type AddCartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,min=1"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type PaymentRequest struct {
	Provider   entity.PaymentProvider `json:"provider"`
	Phone      string                 `json:"phone"`
	CardName   string                 `json:"cardName"`
	CardNumber string                 `json:"cardNumber"`
	CardExpiry string                 `json:"cardExpiry"`
	CardCVV    string                 `json:"cardCvv"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	cart, err := h.cartUC.Get(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart))
}

// AddItem adds quantity (default 1) of a product, merging with an existing line.
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req AddCartItemRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	var req SetCartQuantityRequest
	if err := bindRequest(c, &req); err != nil {
		return response.AppError(c, err)
	}

	cart, err := h.cartUC.SetQuantity(c.Request().Context(), userID, productID, req.Quantity)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}
	productID, err := pathUUID(c, "productId")
	if err != nil {
		return response.AppError(c, err)
	}

	cart, err := h.cartUC.RemoveItem(c.Request().Context(), userID, productID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	cart, err := h.cartUC.Clear(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart))
}

func (h *CartHandler) GetCheckout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	checkout, err := h.checkoutUC.Get(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCheckoutResponse(checkout))
}

// Step payloads are checked for completeness by the checkout itself, so the
// handlers bind without struct validation.

func (h *CartHandler) SaveAddress(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req entity.ShippingAddress
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid address input")
	}

	checkout, err := h.checkoutUC.SaveAddress(c.Request().Context(), userID, req)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCheckoutResponse(checkout))
}

func (h *CartHandler) SaveDelivery(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req entity.DeliveryDetails
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid delivery input")
	}

	checkout, err := h.checkoutUC.SaveDelivery(c.Request().Context(), userID, req)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCheckoutResponse(checkout))
}

func (h *CartHandler) SavePayment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid payment input")
	}

	checkout, err := h.checkoutUC.SavePayment(c.Request().Context(), userID, entity.PaymentDetails{
		Provider:   req.Provider,
		Phone:      req.Phone,
		CardName:   req.CardName,
		CardNumber: req.CardNumber,
		CardExpiry: req.CardExpiry,
		CardCVV:    req.CardCVV,
	})
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusOK, toCheckoutResponse(checkout))
}

func (h *CartHandler) ConfirmCheckout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	order, err := h.checkoutUC.Confirm(c.Request().Context(), userID)
	if err != nil {
		return response.AppError(c, err)
	}

	return response.Success(c, http.StatusCreated, toOrderResponse(order))
}

func (h *CartHandler) ResetCheckout(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return response.AppError(c, err)
	}

	if err := h.checkoutUC.Reset(c.Request().Context(), userID); err != nil {
		return response.AppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
