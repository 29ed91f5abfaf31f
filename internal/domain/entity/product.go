package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Product is a sellable catalog item.
type Product struct {
	ID                uuid.UUID
	Name              string
	Slug              string
	Description       ProductDescription
	Price             decimal.Decimal
	Discount          int // percent, 0..100
	FinalPrice        decimal.Decimal
	Currency          string
	CategoryID        *uuid.UUID
	Category          *Category
	Brand             string
	SKU               string
	Images            []ProductImage
	Stock             int
	LowStockThreshold int
	LastRestockedAt   *time.Time
	IsActive          bool
	RatingAvg         float64
	RatingCount       int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ProductDescription struct {
	Features       []string          `json:"features,omitempty"`
	Details        string            `json:"details,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// CategoryName returns the resolved category name, or "" when uncategorised.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}

	return p.Category.Name
}

// FinalPriceOf applies a percentage discount and rounds to a whole unit.
func FinalPriceOf(price decimal.Decimal, discount int) decimal.Decimal {
	factor := hundred.Sub(decimal.NewFromInt(int64(discount)))

	return price.Mul(factor).Div(hundred).Round(0)
}

// Reprice recomputes FinalPrice from Price and Discount. Every write path calls it.
func (p *Product) Reprice() {
	p.FinalPrice = FinalPriceOf(p.Price, p.Discount)
}

// StockStatus is the derived availability of a product.
type StockStatus string

const (
	StockInStock    StockStatus = "in-stock"
	StockLowStock   StockStatus = "low-stock"
	StockOutOfStock StockStatus = "out-of-stock"
)

func (s StockStatus) IsValid() bool {
	switch s {
	case StockInStock, StockLowStock, StockOutOfStock:
		return true
	default:
		return false
	}
}

// StockStatusOf classifies stock against the low-stock threshold.
func StockStatusOf(stock, threshold int) StockStatus {
	switch {
	case stock <= 0:
		return StockOutOfStock
	case stock <= threshold:
		return StockLowStock
	default:
		return StockInStock
	}
}

func (p *Product) StockStatus() StockStatus {
	return StockStatusOf(p.Stock, p.LowStockThreshold)
}

// StockValue is stock on hand priced at list price.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Stock)))
}

// StockDirection says whether an adjustment adds or removes units.
type StockDirection string

const (
	StockAdd      StockDirection = "add"
	StockSubtract StockDirection = "subtract"
)

// ApplyStockDelta changes stock by delta, clamping at zero, and returns the
// change actually applied. Any applied change stamps LastRestockedAt.
func (p *Product) ApplyStockDelta(delta int, now time.Time) int {
	next := max(p.Stock+delta, 0)
	applied := next - p.Stock
	p.Stock = next
	p.LastRestockedAt = &now

	return applied
}

// Adjust applies a single-item add or subtract of amount units.
func (p *Product) Adjust(direction StockDirection, amount int, now time.Time) int {
	if direction == StockSubtract {
		return p.ApplyStockDelta(-amount, now)
	}

	return p.ApplyStockDelta(amount, now)
}

// MarkSoldOut zeroes stock and returns the (non-positive) change applied.
func (p *Product) MarkSoldOut() int {
	applied := -p.Stock
	p.Stock = 0

	return applied
}

// AddRating folds a new review rating into the running average.
func (p *Product) AddRating(rating int) {
	total := p.RatingAvg*float64(p.RatingCount) + float64(rating)
	p.RatingCount++
	p.RatingAvg = total / float64(p.RatingCount)
}
