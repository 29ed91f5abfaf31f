package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFinalPriceOf(t *testing.T) {
	tests := []struct {
		name     string
		price    int64
		discount int
		want     int64
	}{
		{name: "no discount", price: 90000, discount: 0, want: 90000},
		{name: "ten percent", price: 199000, discount: 10, want: 179100},
		{name: "rounds half up", price: 15, discount: 10, want: 14},
		{name: "rounds fraction", price: 999, discount: 15, want: 849},
		{name: "full discount", price: 5000, discount: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPriceOf(decimal.NewFromInt(tt.price), tt.discount)
			assert.True(t, decimal.NewFromInt(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestProduct_Reprice(t *testing.T) {
	p := &Product{Price: decimal.NewFromInt(200), Discount: 25}
	p.Reprice()
	assert.Equal(t, "150", p.FinalPrice.String())

	p.Discount = 0
	p.Reprice()
	assert.Equal(t, "200", p.FinalPrice.String())
}

func TestStockStatusOf(t *testing.T) {
	tests := []struct {
		stock, threshold int
		want             StockStatus
	}{
		{stock: 0, threshold: 20, want: StockOutOfStock},
		{stock: 1, threshold: 20, want: StockLowStock},
		{stock: 20, threshold: 20, want: StockLowStock},
		{stock: 21, threshold: 20, want: StockInStock},
		{stock: 45, threshold: 20, want: StockInStock},
		{stock: 0, threshold: 0, want: StockOutOfStock},
		{stock: 1, threshold: 0, want: StockInStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StockStatusOf(tt.stock, tt.threshold), "stock=%d threshold=%d", tt.stock, tt.threshold)
	}
}

func TestProduct_AdjustClampsAtZero(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &Product{Stock: 45, LowStockThreshold: 20}
	assert.Equal(t, StockInStock, p.StockStatus())

	applied := p.Adjust(StockSubtract, 50, now)

	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, -45, applied)
	assert.Equal(t, StockOutOfStock, p.StockStatus())
	if assert.NotNil(t, p.LastRestockedAt) {
		assert.Equal(t, now, *p.LastRestockedAt)
	}
}

func TestProduct_AdjustAdd(t *testing.T) {
	p := &Product{Stock: 5, LowStockThreshold: 10}
	assert.Equal(t, StockLowStock, p.StockStatus())

	applied := p.Adjust(StockAdd, 30, time.Now())

	assert.Equal(t, 35, p.Stock)
	assert.Equal(t, 30, applied)
	assert.Equal(t, StockInStock, p.StockStatus())
}

func TestProduct_ApplyStockDeltaNeverNegative(t *testing.T) {
	for _, delta := range []int{-1, -10, -1000} {
		p := &Product{Stock: 3}
		p.ApplyStockDelta(delta, time.Now())
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
}

func TestProduct_MarkSoldOut(t *testing.T) {
	p := &Product{Stock: 12}
	assert.Equal(t, -12, p.MarkSoldOut())
	assert.Equal(t, 0, p.Stock)
	assert.Nil(t, p.LastRestockedAt)
}

func TestProduct_AddRating(t *testing.T) {
	p := &Product{}
	p.AddRating(5)
	p.AddRating(4)
	p.AddRating(3)

	assert.Equal(t, 3, p.RatingCount)
	assert.InDelta(t, 4.0, p.RatingAvg, 1e-9)
}

func TestReasonForChange(t *testing.T) {
	assert.Equal(t, InventoryRestock, ReasonForChange(5))
	assert.Equal(t, InventoryAdjustment, ReasonForChange(-5))
	assert.Equal(t, InventoryAdjustment, ReasonForChange(0))
}
