package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderFilter struct {
	Query  string
	Status string
	Sort   string // newest | oldest | highest | lowest
}

type OrderStats struct {
	Total        int
	ByStatus     map[entity.OrderStatus]int
	TotalRevenue decimal.Decimal
}

type OrderView struct {
	Orders []*entity.Order
	Stats  OrderStats
}

type Dashboard struct {
	TotalSales     decimal.Decimal
	TotalOrders    int
	TotalCustomers int64
	TotalProducts  int64
	RecentOrders   []*entity.Order
}

// OrderUsecase serves shoppers' order history and the admin order workflow.
type OrderUsecase interface {
	MyOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	MyOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	TrackingQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)

	List(ctx context.Context, filter OrderFilter) (*OrderView, error)
	Get(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	Refund(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}
