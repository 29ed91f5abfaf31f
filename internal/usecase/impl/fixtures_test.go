package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/persistence/postgres"
	mockSvc "storefront/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: 4},
		Store: &config.StoreConfig{
			Currency:                 "UGX",
			DefaultLowStockThreshold: 20,
		},
	}
}

// storeFixtures wires real gorm repositories over in-memory SQLite and mocks
// the outward-facing services.
type storeFixtures struct {
	db        *gorm.DB
	txManager repository.TransactionManager
	users     repository.UserRepository
	products  repository.ProductRepository
	category  repository.CategoryRepository
	reviews   repository.ReviewRepository
	wishlist  repository.WishlistRepository
	carts     repository.CartRepository
	checkouts repository.CheckoutRepository
	orders    repository.OrderRepository
	payments  repository.PaymentRepository
	inventory repository.InventoryRepository
	cache     *mockSvc.MockCatalogCache
	publisher *mockSvc.MockEventPublisher
	cfg       *config.Config
	logger    *slog.Logger
}

func newStoreFixtures(t *testing.T) *storeFixtures {
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

	cache := mockSvc.NewMockCatalogCache(t)
	cache.EXPECT().Invalidate(mock.Anything).Return(nil).Maybe()
	publisher := mockSvc.NewMockEventPublisher(t)

	return &storeFixtures{
		db:        db,
		txManager: postgres.NewTransactionManager(db),
		users:     postgres.NewUserRepository(db),
		products:  postgres.NewProductRepository(db),
		category:  postgres.NewCategoryRepository(db),
		reviews:   postgres.NewReviewRepository(db),
		wishlist:  postgres.NewWishlistRepository(db),
		carts:     postgres.NewCartRepository(db),
		checkouts: postgres.NewCheckoutRepository(db),
		orders:    postgres.NewOrderRepository(db),
		payments:  postgres.NewPaymentRepository(db),
		inventory: postgres.NewInventoryRepository(db),
		cache:     cache,
		publisher: publisher,
		cfg:       newTestConfig(),
		logger:    newDiscardLogger(),
	}
}

func (f *storeFixtures) seedUser(t *testing.T, name, email string) *entity.User {
	t.Helper()

	user := entity.NewUser(name, email, "hash")
	require.NoError(t, f.users.Create(context.Background(), user))

	return user
}

func (f *storeFixtures) seedProduct(t *testing.T, name string, price int64, stock int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Name:              name,
		Slug:              slugify(name),
		Price:             decimal.NewFromInt(price),
		Currency:          "UGX",
		Stock:             stock,
		LowStockThreshold: 10,
		IsActive:          true,
	}
	product.Reprice()
	require.NoError(t, f.products.Create(context.Background(), product))

	return product
}

// seedOrder places an order directly through the repository.
func (f *storeFixtures) seedOrder(t *testing.T, user *entity.User, status entity.OrderStatus, total int64) *entity.Order {
	t.Helper()

	order := &entity.Order{
		UserID:      user.ID,
		Items:       []entity.OrderItem{{ProductID: uuid.New(), Name: "line", Price: decimal.NewFromInt(total), Quantity: 1, Total: decimal.NewFromInt(total)}},
		TotalAmount: decimal.NewFromInt(total),
		Currency:    "UGX",
		Status:      status,
		PlacedAt:    nowUTC(),
	}
	require.NoError(t, f.orders.Create(context.Background(), order))

	return order
}

func (f *storeFixtures) expectPublish(eventType string) *mockSvc.MockEventPublisher_PublishOrderEvent_Call {
	return f.publisher.EXPECT().
		PublishOrderEvent(mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
			return e.Type == eventType
		})).
		Return(nil)
}
