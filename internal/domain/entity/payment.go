package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentMobileMoney    PaymentMethod = "mobile_money"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// PaymentProvider is the option picked at checkout.
type PaymentProvider string

const (
	ProviderMTN    PaymentProvider = "mtn"
	ProviderAirtel PaymentProvider = "airtel"
	ProviderCard   PaymentProvider = "card"
	ProviderCash   PaymentProvider = "cash"
)

func (p PaymentProvider) IsValid() bool {
	switch p {
	case ProviderMTN, ProviderAirtel, ProviderCard, ProviderCash:
		return true
	default:
		return false
	}
}

// Method maps a checkout provider onto the stored payment method.
func (p PaymentProvider) Method() PaymentMethod {
	switch p {
	case ProviderMTN, ProviderAirtel:
		return PaymentMobileMoney
	case ProviderCard:
		return PaymentCard
	default:
		return PaymentCashOnDelivery
	}
}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	UserID        uuid.UUID
	Method        PaymentMethod
	Provider      PaymentProvider
	TransactionID string
	Amount        decimal.Decimal
	Currency      string
	Status        PaymentStatus
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
