package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartModel mirrors the 'carts' table; one row per user.
type CartModel struct {
	UUIDKey
	UserID     uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Items      []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalItems int             `gorm:"not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

type CartItemModel struct {
	UUIDKey
	CartID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200)"`
	Image     string          `gorm:"type:varchar(512)"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// ShippingColumns are the recipient fields shared by checkouts and orders.
type ShippingColumns struct {
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Phone     string `gorm:"type:varchar(32)"`
	Email     string `gorm:"type:varchar(255)"`
	Address   string `gorm:"type:varchar(255)"`
	Region    string `gorm:"type:varchar(100)"`
	City      string `gorm:"type:varchar(100)"`
}

type DeliveryColumns struct {
	Method string `gorm:"type:varchar(50)"`
	Date   string `gorm:"type:varchar(20)"`
	Time   string `gorm:"type:varchar(20)"`
}

// CheckoutModel mirrors the 'checkouts' table; one in-progress checkout per user.
type CheckoutModel struct {
	UUIDKey
	UserID            uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Shipping          ShippingColumns `gorm:"embedded;embeddedPrefix:ship_"`
	Delivery          DeliveryColumns `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentProvider   string          `gorm:"type:varchar(16)"`
	PaymentPhone      string          `gorm:"type:varchar(32)"`
	PaymentCardName   string          `gorm:"type:varchar(100)"`
	PaymentCardExpiry string          `gorm:"type:varchar(7)"`
	PaymentCardLast4  string          `gorm:"type:varchar(4)"`
	AddressComplete   bool            `gorm:"not null"`
	DeliveryComplete  bool            `gorm:"not null"`
	PaymentComplete   bool            `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (CheckoutModel) TableName() string {
	return "checkouts"
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	UUIDKey
	UserID      uuid.UUID        `gorm:"type:uuid;index;not null"`
	User        *UserModel       `gorm:"foreignKey:UserID"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Shipping    ShippingColumns  `gorm:"embedded;embeddedPrefix:ship_"`
	Delivery    DeliveryColumns  `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentID   *uuid.UUID       `gorm:"type:uuid"`
	Payment     *PaymentModel    `gorm:"foreignKey:OrderID"`
	TotalAmount decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	Currency    string           `gorm:"type:varchar(3);not null"`
	Status      string           `gorm:"type:varchar(16);index;not null"`
	PlacedAt    time.Time        `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

type OrderItemModel struct {
	UUIDKey
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Position  int             `gorm:"not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"type:varchar(200)"`
	Price     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Quantity  int             `gorm:"not null"`
	Total     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// PaymentModel mirrors the 'payments' table.
type PaymentModel struct {
	UUIDKey
	OrderID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	UserID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	Method        string          `gorm:"type:varchar(32);not null"`
	Provider      string          `gorm:"type:varchar(16)"`
	TransactionID string          `gorm:"type:varchar(100)"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	Status        string          `gorm:"type:varchar(16);not null"`
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}

// InventoryEntryModel mirrors the append-only 'inventory_entries' ledger.
type InventoryEntryModel struct {
	UUIDKey
	ProductID uuid.UUID  `gorm:"type:uuid;index;not null"`
	Change    int        `gorm:"not null"`
	Reason    string     `gorm:"type:varchar(16);not null"`
	OrderID   *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time  `gorm:"index"`
}

func (InventoryEntryModel) TableName() string {
	return "inventory_entries"
}

// OrderActivityModel mirrors 'order_activities', the timeline written by the
// event worker. Payload keeps the event exactly as it was delivered.
type OrderActivityModel struct {
	UUIDKey
	OrderID        uuid.UUID      `gorm:"type:uuid;index;not null"`
	MessageID      string         `gorm:"type:varchar(128);uniqueIndex;not null"`
	Type           string         `gorm:"type:varchar(32);not null"`
	Status         string         `gorm:"type:varchar(16);not null"`
	PreviousStatus string         `gorm:"type:varchar(16)"`
	RequestID      string         `gorm:"type:varchar(64)"`
	Payload        datatypes.JSON `gorm:"not null"`
	OccurredAt     time.Time      `gorm:"index"`
	CreatedAt      time.Time
}

func (OrderActivityModel) TableName() string {
	return "order_activities"
}
