package impl

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type checkoutService struct {
	txManager repository.TransactionManager
	publisher service.EventPublisher
	cache     service.CatalogCache
	currency  string
	now       func() time.Time
	logger    *slog.Logger
}

type CheckoutServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Publisher service.EventPublisher
	Cache     service.CatalogCache
	Config    *config.Config
	Logger    *slog.Logger
}

func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager: params.TxManager,
		publisher: params.Publisher,
		cache:     params.Cache,
		currency:  storeCurrency(params.Config),
		now:       nowUTC,
		logger:    params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func loadCheckout(ctx context.Context, repo repository.CheckoutRepository, userID uuid.UUID) (*entity.Checkout, error) {
	checkout, err := repo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCheckoutNotFound) {
		return entity.NewCheckout(userID), nil
	}
	if err != nil {
		return nil, err
	}

	return checkout, nil
}

// translateStepError maps checkout state machine errors to API errors.
func translateStepError(err error) error {
	switch {
	case errors.Is(err, entity.ErrStepLocked):
		return domainerrors.ErrCheckoutStepLocked
	case errors.Is(err, entity.ErrStepOutOfOrder):
		return domainerrors.ErrCheckoutStepOutOfOrder
	case errors.Is(err, entity.ErrStepIncomplete):
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	default:
		return err
	}
}

func (srv *checkoutService) Get(ctx context.Context, userID uuid.UUID) (*entity.Checkout, error) {
	var checkout *entity.Checkout
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		checkout, err = loadCheckout(ctx, repoFactory.CheckoutRepo(), userID)

		return err
	})

	return checkout, err
}

func (srv *checkoutService) SaveAddress(ctx context.Context, userID uuid.UUID, address entity.ShippingAddress) (*entity.Checkout, error) {
	return srv.step(ctx, userID, func(c *entity.Checkout) error {
		return c.CompleteAddress(address)
	})
}

func (srv *checkoutService) SaveDelivery(ctx context.Context, userID uuid.UUID, delivery entity.DeliveryDetails) (*entity.Checkout, error) {
	return srv.step(ctx, userID, func(c *entity.Checkout) error {
		return c.CompleteDelivery(delivery)
	})
}

func (srv *checkoutService) SavePayment(ctx context.Context, userID uuid.UUID, payment entity.PaymentDetails) (*entity.Checkout, error) {
	if !payment.Provider.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("payment method must be one of mtn, airtel, card, cash")
	}

	return srv.step(ctx, userID, func(c *entity.Checkout) error {
		return c.CompletePayment(payment)
	})
}

func (srv *checkoutService) step(ctx context.Context, userID uuid.UUID, complete func(*entity.Checkout) error) (*entity.Checkout, error) {
	var checkout *entity.Checkout
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.CheckoutRepo()

		var err error
		checkout, err = loadCheckout(ctx, repo, userID)
		if err != nil {
			return err
		}
		if err := complete(checkout); err != nil {
			return translateStepError(err)
		}

		return repo.Save(ctx, checkout)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Checkout step completed", slog.Any("userID", userID), slog.String("next", string(checkout.CurrentStep())))

	return checkout, nil
}

// Confirm turns the cart into an order. Stock is re-checked, the order and its
// pending payment are created, stock is decremented with sale ledger entries,
// and the cart and checkout are cleared, all in one transaction.
func (srv *checkoutService) Confirm(ctx context.Context, userID uuid.UUID) (*entity.Order, error) {
	now := srv.now()

	var order *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		checkout, err := loadCheckout(ctx, repoFactory.CheckoutRepo(), userID)
		if err != nil {
			return err
		}
		if !checkout.CanConfirm() {
			return domainerrors.ErrCheckoutIncomplete
		}

		cartRepo := repoFactory.CartRepo()
		cart, err := loadCart(ctx, cartRepo, userID, srv.currency)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return domainerrors.ErrCartEmpty
		}

		products, err := reserveStock(ctx, repoFactory.ProductRepo(), cart)
		if err != nil {
			return err
		}

		order = entity.NewOrderFromCart(cart, checkout.Address, checkout.Delivery, now)
		orderRepo := repoFactory.OrderRepo()
		if err := orderRepo.Create(ctx, order); err != nil {
			return translateNotFound(err)
		}

		payment := &entity.Payment{
			OrderID:  order.ID,
			UserID:   userID,
			Method:   checkout.Payment.Provider.Method(),
			Provider: checkout.Payment.Provider,
			Amount:   order.TotalAmount,
			Currency: order.Currency,
			Status:   entity.PaymentPending,
		}
		if err := repoFactory.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		if err := orderRepo.AttachPayment(ctx, order.ID, payment.ID); err != nil {
			return err
		}
		order.PaymentID = &payment.ID
		order.Payment = payment

		entries := make([]*entity.InventoryEntry, 0, len(cart.Items))
		for _, line := range cart.Items {
			if err := repoFactory.ProductRepo().Update(ctx, products[line.ProductID]); err != nil {
				return err
			}
			entries = append(entries, &entity.InventoryEntry{
				ProductID: line.ProductID,
				Change:    -line.Quantity,
				Reason:    entity.InventorySale,
				OrderID:   &order.ID,
				CreatedBy: &userID,
			})
		}
		if err := repoFactory.InventoryRepo().Append(ctx, entries...); err != nil {
			return err
		}

		cart.Clear()
		if err := cartRepo.Save(ctx, cart); err != nil {
			return err
		}

		return repoFactory.CheckoutRepo().DeleteByUserID(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Warn("Checkout confirmation failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Order placed",
		slog.Any("orderID", order.ID),
		slog.Any("userID", userID),
		slog.String("total", order.TotalAmount.String()))

	invalidateCatalog(ctx, srv.cache, srv.log(ctx))
	publishOrderEvent(ctx, srv.publisher, srv.log(ctx), newOrderEvent(service.EventOrderPlaced, order, ""))

	return order, nil
}

// reserveStock loads every product in the cart and decrements its stock in
// memory. Any line exceeding current stock fails the whole checkout.
func reserveStock(ctx context.Context, productRepo repository.ProductRepository, cart *entity.Cart) (map[uuid.UUID]*entity.Product, error) {
	products := make(map[uuid.UUID]*entity.Product, len(cart.Items))
	for _, line := range cart.Items {
		product, err := productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, translateNotFound(err)
		}
		if err := checkStock(product, line.Quantity); err != nil {
			return nil, err
		}
		product.Stock -= line.Quantity
		products[product.ID] = product
	}

	return products, nil
}

// Reset abandons the checkout so the flow starts again at the address step.
func (srv *checkoutService) Reset(ctx context.Context, userID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CheckoutRepo().DeleteByUserID(ctx, userID)
	})
}
