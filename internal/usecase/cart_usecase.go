package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase mutates a user's cart. Every call returns the cart with totals recomputed.
type CartUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Cart, error)
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*entity.Cart, error)
	Clear(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
}

// CheckoutUsecase drives the address -> delivery -> payment -> confirm flow.
type CheckoutUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.Checkout, error)
	SaveAddress(ctx context.Context, userID uuid.UUID, address entity.ShippingAddress) (*entity.Checkout, error)
	SaveDelivery(ctx context.Context, userID uuid.UUID, delivery entity.DeliveryDetails) (*entity.Checkout, error)
	SavePayment(ctx context.Context, userID uuid.UUID, payment entity.PaymentDetails) (*entity.Checkout, error)
	Confirm(ctx context.Context, userID uuid.UUID) (*entity.Order, error)
	Reset(ctx context.Context, userID uuid.UUID) error
}
