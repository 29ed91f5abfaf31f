package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	apimiddleware "storefront/internal/delivery/api/middleware"
	"storefront/internal/delivery/api/router"
	"storefront/internal/delivery/api/router/handler"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/cache"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/qrcode"
	"storefront/internal/infra/ratelimit"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testAPI serves the real router and services over in-memory SQLite.
type testAPI struct {
	e        *echo.Echo
	users    repository.UserRepository
	tokens   service.TokenService
	activity usecase.OrderActivityUsecase
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type denyLimiter struct{}

func (denyLimiter) Allow(context.Context, string) (*service.RateLimitResult, error) {
	return &service.RateLimitResult{
		Allowed:    false,
		Limit:      5,
		RetryAfter: 30 * time.Second,
		ResetAt:    time.Now().Add(30 * time.Second),
	}, nil
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:  &config.AuthConfig{BcryptCost: 4},
		Store: &config.StoreConfig{Currency: "UGX", DefaultLowStockThreshold: 10},
	}
	cfg.HTTP.MaxRequestBodySize = "1M"
	cfg.SecretKey.Access = "test-access-secret"

	return cfg
}

func newTestAPI(t *testing.T, limiter service.RateLimiter) *testAPI {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, postgres.Migrate(context.Background(), db))

	cfg := newTestConfig()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	if limiter == nil {
		limiter = ratelimit.Unlimited{}
	}

	txManager := postgres.NewTransactionManager(db)
	userRepo := postgres.NewUserRepository(db)
	productRepo := postgres.NewProductRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	wishlistRepo := postgres.NewWishlistRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	catalogCache := cache.NewCatalogCache(cache.CatalogCacheParams{Config: cfg, Logger: log})
	publisher := pubsub.NewNoopPublisher(log)
	activityUC := impl.NewOrderActivityService(impl.OrderActivityServiceParams{
		OrderRepo:    orderRepo,
		ActivityRepo: postgres.NewOrderActivityRepository(db),
		Logger:       log,
	})

	userUC := impl.NewUserService(impl.UserServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		ProductRepo:  productRepo,
		WishlistRepo: wishlistRepo,
		CartRepo:     postgres.NewCartRepository(db),
		Hasher:       auth.NewBcryptHasher(cfg),
		TokenService: tokens,
		Config:       cfg,
		Logger:       log,
	})
	catalogUC := impl.NewCatalogService(impl.CatalogServiceParams{
		TxManager:    txManager,
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		ReviewRepo:   postgres.NewReviewRepository(db),
		WishlistRepo: wishlistRepo,
		Cache:        catalogCache,
		Logger:       log,
	})

	e := NewEcho(cfg, log, apimiddleware.NewErrorMiddleware(log))
	router.NewRouter(router.RouterParams{
		UserHandler:    handler.NewUserHandler(handler.UserHandlerParams{UserUC: userUC, Logger: log}),
		CatalogHandler: handler.NewCatalogHandler(handler.CatalogHandlerParams{CatalogUC: catalogUC, Logger: log}),
		CartHandler: handler.NewCartHandler(handler.CartHandlerParams{
			CartUC: impl.NewCartService(impl.CartServiceParams{TxManager: txManager, Config: cfg, Logger: log}),
			CheckoutUC: impl.NewCheckoutService(impl.CheckoutServiceParams{
				TxManager: txManager,
				Publisher: publisher,
				Cache:     catalogCache,
				Config:    cfg,
				Logger:    log,
			}),
			Logger: log,
		}),
		OrderHandler: handler.NewOrderHandler(handler.OrderHandlerParams{
			OrderUC: impl.NewOrderService(impl.OrderServiceParams{
				TxManager:   txManager,
				OrderRepo:   orderRepo,
				UserRepo:    userRepo,
				ProductRepo: productRepo,
				Publisher:   publisher,
				QRCode:      qrcode.NewQRCodeService(cfg),
				Logger:      log,
			}),
			ActivityUC: activityUC,
			Logger:     log,
		}),
		InventoryHandler: handler.NewInventoryHandler(handler.InventoryHandlerParams{
			InventoryUC: impl.NewInventoryService(impl.InventoryServiceParams{
				TxManager:     txManager,
				ProductRepo:   productRepo,
				InventoryRepo: postgres.NewInventoryRepository(db),
				Cache:         catalogCache,
				Logger:        log,
			}),
			Logger: log,
		}),
		AdminHandler: handler.NewAdminHandler(handler.AdminHandlerParams{
			ProductUC: impl.NewProductAdminService(impl.ProductAdminServiceParams{
				ProductRepo:  productRepo,
				CategoryRepo: categoryRepo,
				Cache:        catalogCache,
				Config:       cfg,
				Logger:       log,
			}),
			CustomerUC: impl.NewCustomerService(impl.CustomerServiceParams{UserRepo: userRepo, OrderRepo: orderRepo, Logger: log}),
			Logger:     log,
		}),
		HealthHandler:       handler.NewHealthHandler(handler.HealthHandlerParams{DB: db, Logger: log}),
		AuthMiddleware:      apimiddleware.NewAuthMiddleware(tokens),
		RateLimitMiddleware: apimiddleware.NewRateLimitMiddleware(limiter, log),
	}).RegisterRoutes(e)

	return &testAPI{e: e, users: userRepo, tokens: tokens, activity: activityUC}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSON ||
		rec.Header().Get(echo.HeaderContentType) == echo.MIMEApplicationJSONCharsetUTF8 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (a *testAPI) register(t *testing.T, name, email string) *handler.UserResponse {
	t.Helper()

	rec, env := a.do(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var user handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &user))

	return &user
}

func (a *testAPI) adminToken(t *testing.T) string {
	t.Helper()

	admin := a.register(t, "Back Office", "admin@example.com")
	stored, err := a.users.FindByID(context.Background(), admin.ID)
	require.NoError(t, err)
	stored.Role = entity.RoleAdmin
	require.NoError(t, a.users.Update(context.Background(), stored))

	token, _, err := a.tokens.IssueAccessToken(stored.ID, entity.RoleAdmin)
	require.NoError(t, err)

	return token
}

func (a *testAPI) login(t *testing.T, email string) string {
	t.Helper()

	rec, env := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out handler.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, "Bearer", out.TokenType)

	return out.AccessToken
}

func TestAPI_RegisterAndLogin(t *testing.T) {
	api := newTestAPI(t, nil)

	user := api.register(t, "Amina Nakato", "Amina@Example.com")
	assert.Equal(t, "amina@example.com", user.Email)
	assert.Equal(t, entity.RoleUser, user.Role)

	rec, env := api.do(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Amina Again",
		"email":    "amina@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USER_ALREADY_EXISTS", env.Error.Code)
	assert.NotEmpty(t, env.Meta.RequestID)

	rec, env = api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "amina@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
	assert.Nil(t, env.Error.Details)

	token := api.login(t, "amina@example.com")
	rec, env = api.do(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me handler.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, user.ID, me.ID)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAPI_RegisterValidation(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Amina",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "email")
}

func TestAPI_AuthGuards(t *testing.T) {
	api := newTestAPI(t, nil)
	api.register(t, "Amina", "amina@example.com")
	shopper := api.login(t, "amina@example.com")

	tests := []struct {
		name   string
		path   string
		token  string
		status int
		code   string
	}{
		{name: "no token", path: "/api/users/me", status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "garbage token", path: "/api/cart", token: "not-a-jwt", status: http.StatusUnauthorized, code: "UNAUTHENTICATED"},
		{name: "shopper on back office", path: "/api/admin/dashboard", token: shopper, status: http.StatusForbidden, code: "FORBIDDEN"},
		{name: "shopper on user directory", path: "/api/users", token: shopper, status: http.StatusForbidden, code: "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(t, http.MethodGet, tt.path, tt.token, nil)

			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestAPI_UnknownRouteAndBadPath(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, env := api.do(t, http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)

	rec, env = api.do(t, http.MethodGet, "/api/products/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestAPI_LoginRateLimited(t *testing.T) {
	api := newTestAPI(t, denyLimiter{})

	rec, env := api.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "amina@example.com",
		"password": "secret123",
	})

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", env.Error.Code)
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestAPI_ShoppingFlow(t *testing.T) {
	api := newTestAPI(t, nil)
	admin := api.adminToken(t)

	rec, env := api.do(t, http.MethodPost, "/api/admin/products", admin, map[string]any{
		"name":     "Trail Shoes",
		"price":    "90000",
		"discount": 10,
		"stock":    5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product handler.ProductResponse
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "81000", product.FinalPrice.String())
	assert.Equal(t, "trail-shoes", product.Slug)

	rec, _ = api.do(t, http.MethodGet, "/api/products/"+product.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	api.register(t, "Amina", "amina@example.com")
	shopper := api.login(t, "amina@example.com")

	rec, env = api.do(t, http.MethodPost, "/api/cart/items", shopper, map[string]any{"productId": product.ID, "quantity": 6})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", env.Error.Code)

	rec, env = api.do(t, http.MethodPost, "/api/cart/items", shopper, map[string]any{"productId": product.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var cart handler.CartResponse
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 1, cart.TotalItems)
	assert.Equal(t, "81000", cart.TotalPrice.String())

	rec, env = api.do(t, http.MethodPut, "/api/checkout/delivery", shopper, map[string]any{"method": "express", "date": "2025-03-02"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CHECKOUT_STEP_OUT_OF_ORDER", env.Error.Code)

	steps := []struct {
		path string
		body map[string]any
	}{
		{path: "/api/checkout/address", body: map[string]any{
			"firstName": "Amina", "lastName": "Nakato", "phone": "+256700000000",
			"address": "Plot 4 Kampala Road", "region": "Central", "city": "Kampala",
		}},
		{path: "/api/checkout/delivery", body: map[string]any{"method": "express", "date": "2025-03-02"}},
		{path: "/api/checkout/payment", body: map[string]any{
			"provider": "card", "cardName": "A Nakato", "cardNumber": "4111111111111234",
			"cardExpiry": "12/29", "cardCvv": "123",
		}},
	}
	for _, step := range steps {
		rec, _ = api.do(t, http.MethodPut, step.path, shopper, step.body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}
	assert.NotContains(t, rec.Body.String(), "4111111111111234")
	assert.NotContains(t, rec.Body.String(), `"123"`)

	rec, env = api.do(t, http.MethodPost, "/api/checkout/confirm", shopper, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order handler.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, "81000", order.TotalAmount.String())

	rec, _ = api.do(t, http.MethodGet, "/api/orders/"+order.ID.String()+"/qr", shopper, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec, env = api.do(t, http.MethodPatch, "/api/admin/orders/"+order.ID.String()+"/status", admin, map[string]any{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = api.do(t, http.MethodPost, "/api/admin/orders/"+order.ID.String()+"/cancel", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_ORDER_TRANSITION", env.Error.Code)

	rec, env = api.do(t, http.MethodGet, "/api/orders", shopper, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []handler.OrderResponse
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, entity.OrderShipped, mine[0].Status)

	rec, env = api.do(t, http.MethodGet, "/api/admin/inventory/ledger?productId="+product.ID.String(), admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var ledger []handler.InventoryEntryResponse
	require.NoError(t, json.Unmarshal(env.Data, &ledger))
	require.Len(t, ledger, 1)

	_, err := api.activity.Record(context.Background(), "msg-1", &service.OrderEvent{
		Type:    service.EventOrderPlaced,
		OrderID: order.ID.String(),
		Status:  "pending",
	})
	require.NoError(t, err)
	rec, env = api.do(t, http.MethodGet, "/api/admin/orders/"+order.ID.String()+"/timeline", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var timeline []handler.OrderActivityResponse
	require.NoError(t, json.Unmarshal(env.Data, &timeline))
	require.Len(t, timeline, 1)
	assert.Equal(t, entity.OrderPending, timeline[0].Status)
}

func TestAPI_Health(t *testing.T) {
	api := newTestAPI(t, nil)

	rec, _ := api.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
