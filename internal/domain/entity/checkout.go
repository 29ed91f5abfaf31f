package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrStepLocked     = errors.New("checkout step already completed")
	ErrStepOutOfOrder = errors.New("previous checkout step not completed")
	ErrStepIncomplete = errors.New("checkout step is missing required fields")
)

// CheckoutStep is the position in the linear address -> delivery -> payment flow.
type CheckoutStep string

const (
	StepAddress   CheckoutStep = "address"
	StepDelivery  CheckoutStep = "delivery"
	StepPayment   CheckoutStep = "payment"
	StepConfirmed CheckoutStep = "confirmed"
)

// Checkout is a user's in-progress checkout. A step can be edited only until
// it is marked complete, and only after every earlier step is complete.
type Checkout struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Address          ShippingAddress
	Delivery         DeliveryDetails
	Payment          PaymentDetails
	AddressComplete  bool
	DeliveryComplete bool
	PaymentComplete  bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PaymentDetails is what the payment step collects. Card number and CVV are
// only held long enough to validate the step; CardLast4 is what gets kept.
type PaymentDetails struct {
	Provider   PaymentProvider `json:"provider"`
	Phone      string          `json:"phone,omitempty"`
	CardName   string          `json:"cardName,omitempty"`
	CardNumber string          `json:"-"`
	CardExpiry string          `json:"cardExpiry,omitempty"`
	CardCVV    string          `json:"-"`
	CardLast4  string          `json:"cardLast4,omitempty"`
}

func NewCheckout(userID uuid.UUID) *Checkout {
	return &Checkout{UserID: userID}
}

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}

	return true
}

// IsComplete: first and last name, phone, street address, region and city are required.
func (a ShippingAddress) IsComplete() bool {
	return filled(a.FirstName, a.LastName, a.Phone, a.Address, a.Region, a.City)
}

func (d DeliveryDetails) IsComplete() bool {
	return filled(d.Method, d.Date)
}

// IsComplete depends on the provider: mobile money needs a phone number,
// card needs number, expiry and CVV, cash needs nothing.
func (p PaymentDetails) IsComplete() bool {
	switch p.Provider {
	case ProviderMTN, ProviderAirtel:
		return filled(p.Phone)
	case ProviderCard:
		return filled(p.CardNumber, p.CardExpiry, p.CardCVV)
	case ProviderCash:
		return true
	default:
		return false
	}
}

// CurrentStep is the first step not yet complete.
func (c *Checkout) CurrentStep() CheckoutStep {
	switch {
	case !c.AddressComplete:
		return StepAddress
	case !c.DeliveryComplete:
		return StepDelivery
	case !c.PaymentComplete:
		return StepPayment
	default:
		return StepConfirmed
	}
}

func (c *Checkout) CanConfirm() bool {
	return c.AddressComplete && c.DeliveryComplete && c.PaymentComplete
}

func (c *Checkout) CompleteAddress(address ShippingAddress) error {
	if c.AddressComplete {
		return ErrStepLocked
	}
	if !address.IsComplete() {
		return ErrStepIncomplete
	}
	c.Address = address
	c.AddressComplete = true

	return nil
}

func (c *Checkout) CompleteDelivery(delivery DeliveryDetails) error {
	if c.DeliveryComplete {
		return ErrStepLocked
	}
	if !c.AddressComplete {
		return ErrStepOutOfOrder
	}
	if !delivery.IsComplete() {
		return ErrStepIncomplete
	}
	c.Delivery = delivery
	c.DeliveryComplete = true

	return nil
}

func (c *Checkout) CompletePayment(payment PaymentDetails) error {
	if c.PaymentComplete {
		return ErrStepLocked
	}
	if !c.AddressComplete || !c.DeliveryComplete {
		return ErrStepOutOfOrder
	}
	if !payment.IsComplete() {
		return ErrStepIncomplete
	}
	c.Payment = payment.redacted()
	c.PaymentComplete = true

	return nil
}

func (p PaymentDetails) redacted() PaymentDetails {
	if p.Provider == ProviderCard {
		digits := strings.ReplaceAll(p.CardNumber, " ", "")
		if len(digits) >= 4 {
			p.CardLast4 = digits[len(digits)-4:]
		}
	}
	p.CardNumber = ""
	p.CardCVV = ""

	return p
}
