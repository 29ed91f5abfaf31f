package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type checkoutFixtures struct {
	*storeFixtures
	checkout usecase.CheckoutUsecase
	cart     usecase.CartUsecase
	user     *entity.User
}

func createTestCheckoutService(t *testing.T) checkoutFixtures {
	f := newStoreFixtures(t)

	return checkoutFixtures{
		storeFixtures: f,
		checkout: NewCheckoutService(CheckoutServiceParams{
			TxManager: f.txManager,
			Publisher: f.publisher,
			Cache:     f.cache,
			Config:    f.cfg,
			Logger:    f.logger,
		}),
		cart: NewCartService(CartServiceParams{TxManager: f.txManager, Config: f.cfg, Logger: f.logger}),
		user: f.seedUser(t, "Amina", "amina@example.com"),
	}
}

func shippingAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		FirstName: "Amina",
		LastName:  "Nakato",
		Phone:     "+256700000000",
		Address:   "Plot 4 Kampala Road",
		Region:    "Central",
		City:      "Kampala",
	}
}

func (fx checkoutFixtures) completeSteps(t *testing.T, payment entity.PaymentDetails) {
	t.Helper()
	ctx := context.Background()

	_, err := fx.checkout.SaveAddress(ctx, fx.user.ID, shippingAddress())
	require.NoError(t, err)
	_, err = fx.checkout.SaveDelivery(ctx, fx.user.ID, entity.DeliveryDetails{Method: "express", Date: "2025-03-02"})
	require.NoError(t, err)
	_, err = fx.checkout.SavePayment(ctx, fx.user.ID, payment)
	require.NoError(t, err)
}

func TestCheckoutService_StepOrdering(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()

	current, err := fx.checkout.Get(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepAddress, current.CurrentStep())

	_, err = fx.checkout.SaveDelivery(ctx, fx.user.ID, entity.DeliveryDetails{Method: "express", Date: "2025-03-02"})
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutStepOutOfOrder)

	_, err = fx.checkout.SaveAddress(ctx, fx.user.ID, entity.ShippingAddress{FirstName: "Amina"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	saved, err := fx.checkout.SaveAddress(ctx, fx.user.ID, shippingAddress())
	require.NoError(t, err)
	assert.Equal(t, entity.StepDelivery, saved.CurrentStep())

	_, err = fx.checkout.SaveAddress(ctx, fx.user.ID, shippingAddress())
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutStepLocked)

	_, err = fx.checkout.SavePayment(ctx, fx.user.ID, entity.PaymentDetails{Provider: "bitcoin"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	require.NoError(t, fx.checkout.Reset(ctx, fx.user.ID))
	restarted, err := fx.checkout.Get(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StepAddress, restarted.CurrentStep())
}

func TestCheckoutService_PaymentNeverStoresCardSecrets(t *testing.T) {
	fx := createTestCheckoutService(t)

	fx.completeSteps(t, entity.PaymentDetails{
		Provider:   entity.ProviderCard,
		CardName:   "A Nakato",
		CardNumber: "4111 1111 1111 1234",
		CardExpiry: "12/29",
		CardCVV:    "123",
	})

	stored, err := fx.checkouts.FindByUserID(context.Background(), fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "1234", stored.Payment.CardLast4)
	assert.Empty(t, stored.Payment.CardNumber)
	assert.Empty(t, stored.Payment.CardCVV)
	assert.True(t, stored.CanConfirm())
}

func TestCheckoutService_Confirm(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	shoes := fx.seedProduct(t, "Trail Shoes", 90000, 5)
	jacket := fx.seedProduct(t, "Rain Jacket", 199000, 2)

	_, err := fx.cart.AddItem(ctx, fx.user.ID, shoes.ID, 2)
	require.NoError(t, err)
	_, err = fx.cart.AddItem(ctx, fx.user.ID, jacket.ID, 1)
	require.NoError(t, err)
	fx.completeSteps(t, entity.PaymentDetails{Provider: entity.ProviderMTN, Phone: "0770000000"})

	var published *service.OrderEvent
	fx.expectPublish(service.EventOrderPlaced).
		Run(func(_ context.Context, event *service.OrderEvent) { published = event }).
		Once()

	order, err := fx.checkout.Confirm(ctx, fx.user.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderPending, order.Status)
	assert.Equal(t, "379000", order.TotalAmount.String())
	assert.Equal(t, 3, order.ItemCount())
	require.NotNil(t, order.Payment)
	assert.Equal(t, entity.PaymentMobileMoney, order.Payment.Method)
	assert.Equal(t, entity.PaymentPending, order.Payment.Status)

	stored, err := fx.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PaymentID)
	assert.Equal(t, order.Payment.ID, *stored.PaymentID)
	assert.Equal(t, "Kampala", stored.ShippingAddress.City)

	reloaded, err := fx.products.FindByID(ctx, shoes.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Stock)
	reloaded, err = fx.products.FindByID(ctx, jacket.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)

	ledger, err := fx.inventory.List(ctx, nil, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	for _, entry := range ledger {
		assert.Equal(t, entity.InventorySale, entry.Reason)
		assert.Less(t, entry.Change, 0)
		require.NotNil(t, entry.OrderID)
		assert.Equal(t, order.ID, *entry.OrderID)
	}

	cart, err := fx.cart.Get(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())

	_, err = fx.checkouts.FindByUserID(ctx, fx.user.ID)
	assert.ErrorIs(t, err, repository.ErrCheckoutNotFound)

	require.NotNil(t, published)
	assert.Equal(t, order.ID.String(), published.OrderID)
	assert.Equal(t, "379000", published.TotalAmount)
	fx.cache.AssertCalled(t, "Invalidate", mock.Anything)
}

func TestCheckoutService_ConfirmRequiresEveryStep(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	shoes := fx.seedProduct(t, "Trail Shoes", 90000, 5)
	_, err := fx.cart.AddItem(ctx, fx.user.ID, shoes.ID, 1)
	require.NoError(t, err)

	_, err = fx.checkout.Confirm(ctx, fx.user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutIncomplete)

	_, err = fx.checkout.SaveAddress(ctx, fx.user.ID, shippingAddress())
	require.NoError(t, err)
	_, err = fx.checkout.Confirm(ctx, fx.user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrCheckoutIncomplete)
}

func TestCheckoutService_ConfirmEmptyCart(t *testing.T) {
	fx := createTestCheckoutService(t)
	fx.completeSteps(t, entity.PaymentDetails{Provider: entity.ProviderCash})

	_, err := fx.checkout.Confirm(context.Background(), fx.user.ID)

	assert.ErrorIs(t, err, domainerrors.ErrCartEmpty)
}

func TestCheckoutService_ConfirmRollsBackOnStockShortage(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	shoes := fx.seedProduct(t, "Trail Shoes", 90000, 5)
	jacket := fx.seedProduct(t, "Rain Jacket", 199000, 2)

	_, err := fx.cart.AddItem(ctx, fx.user.ID, shoes.ID, 2)
	require.NoError(t, err)
	_, err = fx.cart.AddItem(ctx, fx.user.ID, jacket.ID, 2)
	require.NoError(t, err)
	fx.completeSteps(t, entity.PaymentDetails{Provider: entity.ProviderCash})

	// stock sold elsewhere after the item went into the cart
	jacket.Stock = 1
	require.NoError(t, fx.products.Update(ctx, jacket))

	_, err = fx.checkout.Confirm(ctx, fx.user.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	reloaded, err := fx.products.FindByID(ctx, shoes.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, reloaded.Stock)

	orders, err := fx.orders.ListByUser(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)

	cart, err := fx.cart.Get(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.TotalItems)
	_, err = fx.checkouts.FindByUserID(ctx, fx.user.ID)
	assert.NoError(t, err)
}

func TestCheckoutService_ConfirmSurvivesPublishFailure(t *testing.T) {
	fx := createTestCheckoutService(t)
	ctx := context.Background()
	shoes := fx.seedProduct(t, "Trail Shoes", 90000, 5)
	_, err := fx.cart.AddItem(ctx, fx.user.ID, shoes.ID, 1)
	require.NoError(t, err)
	fx.completeSteps(t, entity.PaymentDetails{Provider: entity.ProviderCash})

	fx.publisher.EXPECT().PublishOrderEvent(mock.Anything, mock.Anything).Return(assert.AnError).Once()

	order, err := fx.checkout.Confirm(ctx, fx.user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, order.ID)
}
