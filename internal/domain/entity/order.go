package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// OrderStatuses lists the vocabulary in workflow order.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderShipped, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	default:
		return false
	}
}

// CountsTowardRevenue is false for cancelled and refunded orders.
func (s OrderStatus) CountsTowardRevenue() bool {
	return s != OrderCancelled && s != OrderRefunded
}

// Order is a placed purchase. TotalAmount is fixed at placement.
type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Customer        *User
	Items           []OrderItem
	ShippingAddress ShippingAddress
	Delivery        DeliveryDetails
	PaymentID       *uuid.UUID
	Payment         *Payment
	TotalAmount     decimal.Decimal
	Currency        string
	Status          OrderStatus
	PlacedAt        time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Total     decimal.Decimal
}

type ShippingAddress struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address"`
	Region    string `json:"region"`
	City      string `json:"city"`
}

type DeliveryDetails struct {
	Method string `json:"method"`
	Date   string `json:"date"`
	Time   string `json:"time,omitempty"`
}

// CanCancel reports whether the cancel action applies in the current status.
func (o *Order) CanCancel() bool {
	return o.Status == OrderPending || o.Status == OrderPaid
}

// CanRefund reports whether the refund action applies in the current status.
func (o *Order) CanRefund() bool {
	return o.Status == OrderDelivered
}

// ItemCount is the number of units across all lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}

	return n
}

// NewOrderFromCart snapshots the cart lines into a pending order.
func NewOrderFromCart(cart *Cart, shipping ShippingAddress, delivery DeliveryDetails, now time.Time) *Order {
	items := make([]OrderItem, 0, len(cart.Items))
	total := decimal.Zero
	for _, line := range cart.Items {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Total:     lineTotal,
		})
		total = total.Add(lineTotal)
	}

	return &Order{
		UserID:          cart.UserID,
		Items:           items,
		ShippingAddress: shipping,
		Delivery:        delivery,
		TotalAmount:     total,
		Currency:        cart.Currency,
		Status:          OrderPending,
		PlacedAt:        now,
	}
}

// Revenue sums TotalAmount over orders that count toward revenue.
func Revenue(orders []*Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status.CountsTowardRevenue() {
			total = total.Add(o.TotalAmount)
		}
	}

	return total
}
