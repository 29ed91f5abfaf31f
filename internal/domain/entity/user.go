package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User is a storefront account. PasswordHash never leaves the service layer.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Phone        string
	ProfileImage string
	Address      Address
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Address is the single postal address kept on an account.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode,omitempty"`
}

// IsZero reports whether no address field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// NewUser builds an active shopper account.
func NewUser(name, email, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         RoleUser,
		IsActive:     true,
	}
}

// CustomerSummary is a user joined with their order history, as shown in the customers table.
type CustomerSummary struct {
	User        *User
	TotalOrders int
	TotalSpent  decimal.Decimal
}
