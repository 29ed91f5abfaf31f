package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCheckoutNotFound = errors.New("checkout not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrPaymentNotFound  = errors.New("payment not found")
)

type CartRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)
	// Save writes the cart and replaces its lines.
	Save(ctx context.Context, cart *entity.Cart) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type CheckoutRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Checkout, error)
	Save(ctx context.Context, checkout *entity.Checkout) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

// OrderRepository loads orders with items, customer and payment attached.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	ListAll(ctx context.Context) ([]*entity.Order, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, order *entity.Order) error
	AttachPayment(ctx context.Context, orderID, paymentID uuid.UUID) error
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
}

// InventoryRepository is the append-only stock ledger.
type InventoryRepository interface {
	Append(ctx context.Context, entries ...*entity.InventoryEntry) error
	// List returns entries newest first, optionally for one product.
	List(ctx context.Context, productID *uuid.UUID, limit int) ([]*entity.InventoryEntry, error)
}
