package postgres

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRepository_SaveReplacesLines(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCartRepository(db)
	userID := uuid.New()

	_, err := repo.FindByUserID(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrCartNotFound)

	shoes := seedProduct(t, db, "shoes", 90000, 10)
	jacket := seedProduct(t, db, "jacket", 199000, 10)

	cart := entity.NewCart(userID, "UGX")
	cart.Add(shoes, 2)
	cart.Add(jacket, 1)
	require.NoError(t, repo.Save(ctx, cart))

	got, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)
	assert.Equal(t, 3, got.TotalItems)
	assert.Equal(t, "379000", got.TotalPrice.String())
	require.Len(t, got.Items, 2)
	assert.Equal(t, shoes.ID, got.Items[0].ProductID)

	got.Remove(shoes.ID)
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	require.Len(t, again.Items, 1)
	assert.Equal(t, jacket.ID, again.Items[0].ProductID)
	assert.EqualValues(t, 1, countRows(t, db, &model.CartItemModel{}))
}

func TestCheckoutRepository_NeverStoresCardSecrets(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewCheckoutRepository(db)
	userID := uuid.New()

	checkout := entity.NewCheckout(userID)
	checkout.Payment = entity.PaymentDetails{Provider: entity.ProviderCard, CardNumber: "4111111111111111", CardCVV: "123", CardLast4: "1111"}
	checkout.PaymentComplete = true
	require.NoError(t, repo.Save(ctx, checkout))

	got, err := repo.FindByUserID(ctx, userID)
	require.NoError(t, err)
	assert.True(t, got.PaymentComplete)
	assert.Equal(t, "1111", got.Payment.CardLast4)
	assert.Empty(t, got.Payment.CardNumber)
	assert.Empty(t, got.Payment.CardCVV)

	require.NoError(t, repo.DeleteByUserID(ctx, userID))
	_, err = repo.FindByUserID(ctx, userID)
	assert.ErrorIs(t, err, repository.ErrCheckoutNotFound)
}

func placeTestOrder(t *testing.T, repo repository.OrderRepository, userID uuid.UUID, product *entity.Product, placedAt time.Time) *entity.Order {
	t.Helper()

	cart := entity.NewCart(userID, "UGX")
	cart.Add(product, 2)
	order := entity.NewOrderFromCart(cart, entity.ShippingAddress{FirstName: "Amina", City: "Kampala"}, entity.DeliveryDetails{Method: "express", Date: "2025-03-02"}, placedAt)
	require.NoError(t, repo.Create(context.Background(), order))

	return order
}

func TestOrderRepository_CreateAndLoadAssociations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	user := seedUser(t, db, "buyer@example.com")
	product := seedProduct(t, db, "shoes", 90000, 10)
	order := placeTestOrder(t, repo, user.ID, product, time.Now())

	payment := &entity.Payment{
		OrderID:  order.ID,
		UserID:   user.ID,
		Method:   entity.PaymentCashOnDelivery,
		Provider: entity.ProviderCash,
		Amount:   order.TotalAmount,
		Currency: "UGX",
		Status:   entity.PaymentPending,
	}
	require.NoError(t, NewPaymentRepository(db).Create(ctx, payment))
	require.NoError(t, repo.AttachPayment(ctx, order.ID, payment.ID))

	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "180000", got.TotalAmount.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	require.NotNil(t, got.Customer)
	assert.Equal(t, "buyer@example.com", got.Customer.Email)
	require.NotNil(t, got.Payment)
	assert.Equal(t, entity.PaymentPending, got.Payment.Status)
	require.NotNil(t, got.PaymentID)
	assert.Equal(t, payment.ID, *got.PaymentID)
	assert.Equal(t, "Kampala", got.ShippingAddress.City)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_ListingsAndStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewOrderRepository(db)

	alice := seedUser(t, db, "alice@example.com")
	bob := seedUser(t, db, "bob@example.com")
	product := seedProduct(t, db, "mug", 100, 10)

	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	first := placeTestOrder(t, repo, alice.ID, product, base)
	placeTestOrder(t, repo, bob.ID, product, base.Add(time.Hour))
	last := placeTestOrder(t, repo, alice.ID, product, base.Add(2*time.Hour))

	mine, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, last.ID, mine[0].ID)

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, last.ID, recent[0].ID)

	first.Status = entity.OrderShipped
	require.NoError(t, repo.UpdateStatus(ctx, first))
	got, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, got.Status)

	missing := &entity.Order{ID: uuid.New(), Status: entity.OrderPaid}
	assert.ErrorIs(t, repo.UpdateStatus(ctx, missing), repository.ErrOrderNotFound)
}

func TestInventoryRepository_AppendAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewInventoryRepository(db)
	a, b := uuid.New(), uuid.New()

	require.NoError(t, repo.Append(ctx,
		&entity.InventoryEntry{ProductID: a, Change: 10, Reason: entity.InventoryRestock},
		&entity.InventoryEntry{ProductID: b, Change: -3, Reason: entity.InventoryAdjustment},
	))
	require.NoError(t, repo.Append(ctx, &entity.InventoryEntry{ProductID: a, Change: -2, Reason: entity.InventorySale}))

	all, err := repo.List(ctx, nil, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forA, err := repo.List(ctx, &a, 10)
	require.NoError(t, err)
	require.Len(t, forA, 2)
	assert.Equal(t, entity.InventorySale, forA[0].Reason)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.UserRepo().Create(ctx, entity.NewUser("Tx", "tx@example.com", "hash")); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.EqualValues(t, 0, countRows(t, db, &model.UserModel{}))

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.UserRepo().Create(ctx, entity.NewUser("Tx", "tx@example.com", "hash"))
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, countRows(t, db, &model.UserModel{}))
}
