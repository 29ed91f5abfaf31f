package impl

import (
	"context"
	"log/slog"
	"strconv"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type cartService struct {
	txManager repository.TransactionManager
	currency  string
	logger    *slog.Logger
}

type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Config    *config.Config
	Logger    *slog.Logger
}

func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		currency:  storeCurrency(params.Config),
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loadCart returns the user's cart, or a fresh unsaved one.
func loadCart(ctx context.Context, repo repository.CartRepository, userID uuid.UUID, currency string) (*entity.Cart, error) {
	cart, err := repo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		return entity.NewCart(userID, currency), nil
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (srv *cartService) Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		cart, err = loadCart(ctx, repoFactory.CartRepo(), userID, srv.currency)

		return err
	})

	return cart, err
}

func (srv *cartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	return srv.mutate(ctx, userID, func(cart *entity.Cart, productRepo repository.ProductRepository) error {
		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			return translateNotFound(err)
		}
		if !product.IsActive {
			return domainerrors.ErrProductNotFound.WithDetails("product is not available")
		}
		if err := checkStock(product, cart.QuantityOf(productID)+quantity); err != nil {
			return err
		}
		cart.Add(product, quantity)

		return nil
	})
}

func (srv *cartService) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be at least 1")
	}

	return srv.mutate(ctx, userID, func(cart *entity.Cart, productRepo repository.ProductRepository) error {
		if _, ok := cart.Item(productID); !ok {
			return domainerrors.ErrCartItemNotFound
		}
		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			return translateNotFound(err)
		}
		if err := checkStock(product, quantity); err != nil {
			return err
		}
		cart.SetQuantity(productID, quantity)

		return nil
	})
}

func (srv *cartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*entity.Cart, error) {
	return srv.mutate(ctx, userID, func(cart *entity.Cart, _ repository.ProductRepository) error {
		if !cart.Remove(productID) {
			return domainerrors.ErrCartItemNotFound
		}

		return nil
	})
}

func (srv *cartService) Clear(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	return srv.mutate(ctx, userID, func(cart *entity.Cart, _ repository.ProductRepository) error {
		cart.Clear()

		return nil
	})
}

// mutate loads the cart, applies fn and saves the result in one transaction.
// When fn fails nothing is written.
func (srv *cartService) mutate(
	ctx context.Context,
	userID uuid.UUID,
	fn func(cart *entity.Cart, productRepo repository.ProductRepository) error,
) (*entity.Cart, error) {
	var cart *entity.Cart
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		var err error
		cart, err = loadCart(ctx, cartRepo, userID, srv.currency)
		if err != nil {
			return err
		}
		if err := fn(cart, repoFactory.ProductRepo()); err != nil {
			return err
		}

		return cartRepo.Save(ctx, cart)
	})
	if err != nil {
		srv.log(ctx).Debug("Cart update rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	return cart, nil
}

func checkStock(product *entity.Product, wanted int) error {
	if wanted > product.Stock {
		return domainerrors.ErrInsufficientStock.WithDetails(product.Name + " has only " + strconv.Itoa(product.Stock) + " left")
	}

	return nil
}
