// Package router maps the storefront API routes onto their handlers.
package router

import (
	"storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	rateLimitScopeRegister = "register"
	rateLimitScopeLogin    = "login"
)

type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	InventoryHandler    *handler.InventoryHandler
	AdminHandler        *handler.AdminHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

type router struct {
	user      *handler.UserHandler
	catalog   *handler.CatalogHandler
	cart      *handler.CartHandler
	order     *handler.OrderHandler
	inventory *handler.InventoryHandler
	admin     *handler.AdminHandler
	health    *handler.HealthHandler
	auth      *middleware.AuthMiddleware
	rateLimit *middleware.RateLimitMiddleware
}

func NewRouter(params RouterParams) *router {
	return &router{
		user:      params.UserHandler,
		catalog:   params.CatalogHandler,
		cart:      params.CartHandler,
		order:     params.OrderHandler,
		inventory: params.InventoryHandler,
		admin:     params.AdminHandler,
		health:    params.HealthHandler,
		auth:      params.AuthMiddleware,
		rateLimit: params.RateLimitMiddleware,
	}
}

func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.health.Check)

	api := e.Group("/api")

	// Public
	api.POST("/users/register", r.user.Register, r.rateLimit.Limit(rateLimitScopeRegister))
	api.POST("/auth/login", r.user.Login, r.rateLimit.Limit(rateLimitScopeLogin))
	api.GET("/products", r.catalog.ListProducts)
	api.GET("/products/:id", r.catalog.GetProduct)
	api.GET("/products/:id/reviews", r.catalog.ListReviews)
	api.GET("/catalog", r.catalog.Catalog)
	api.GET("/categories", r.catalog.ListCategories)

	// Signed-in shoppers
	authed := api.Group("", r.auth.RequireAuth)
	{
		authed.GET("/users/me", r.user.Me)
		authed.PUT("/users/me", r.user.UpdateMe)

		authed.POST("/products/:id/reviews", r.catalog.AddReview)

		authed.GET("/wishlist", r.catalog.Wishlist)
		authed.POST("/wishlist/:productId", r.catalog.AddToWishlist)
		authed.DELETE("/wishlist/:productId", r.catalog.RemoveFromWishlist)

		authed.GET("/cart", r.cart.GetCart)
		authed.DELETE("/cart", r.cart.ClearCart)
		authed.POST("/cart/items", r.cart.AddItem)
		authed.PUT("/cart/items/:productId", r.cart.SetQuantity)
		authed.DELETE("/cart/items/:productId", r.cart.RemoveItem)

		authed.GET("/checkout", r.cart.GetCheckout)
		authed.DELETE("/checkout", r.cart.ResetCheckout)
		authed.PUT("/checkout/address", r.cart.SaveAddress)
		authed.PUT("/checkout/delivery", r.cart.SaveDelivery)
		authed.PUT("/checkout/payment", r.cart.SavePayment)
		authed.POST("/checkout/confirm", r.cart.ConfirmCheckout)

		authed.GET("/orders", r.order.MyOrders)
		authed.GET("/orders/:id", r.order.MyOrder)
		authed.GET("/orders/:id/qr", r.order.TrackingQR)
	}

	// The user directory lives under /api/users but is admin-only.
	users := api.Group("/users", r.auth.RequireAuth, r.auth.RequireAdmin)
	{
		users.GET("", r.user.ListUsers)
		users.GET("/:id", r.user.GetUser)
		users.DELETE("/:id", r.user.DeleteUser)
	}

	admin := api.Group("/admin", r.auth.RequireAuth, r.auth.RequireAdmin)
	{
		admin.GET("/dashboard", r.order.Dashboard)

		admin.GET("/products", r.admin.ListProducts)
		admin.POST("/products", r.admin.CreateProduct)
		admin.PUT("/products/:id", r.admin.UpdateProduct)
		admin.DELETE("/products/:id", r.admin.DeleteProduct)
		admin.PATCH("/products/:id/active", r.admin.ToggleProduct)

		admin.POST("/categories", r.catalog.CreateCategory)

		admin.GET("/inventory", r.inventory.List)
		admin.GET("/inventory/ledger", r.inventory.Ledger)
		admin.POST("/inventory/batch", r.inventory.BatchAdjust)
		admin.POST("/inventory/:productId/adjust", r.inventory.Adjust)
		admin.POST("/inventory/:productId/sold-out", r.inventory.MarkSoldOut)
		admin.PUT("/inventory/:productId/threshold", r.inventory.SetThreshold)

		admin.GET("/orders", r.order.List)
		admin.GET("/orders/:id", r.order.Get)
		admin.GET("/orders/:id/timeline", r.order.Timeline)
		admin.PATCH("/orders/:id/status", r.order.UpdateStatus)
		admin.POST("/orders/:id/cancel", r.order.Cancel)
		admin.POST("/orders/:id/refund", r.order.Refund)

		admin.GET("/customers", r.admin.ListCustomers)
		admin.PATCH("/customers/:id/active", r.admin.ToggleCustomer)
	}
}
