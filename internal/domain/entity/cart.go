package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart holds a user's pending selections. TotalItems and TotalPrice are
// always the sums over Items; every mutator below recalculates them.
type Cart struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Items      []CartItem
	TotalItems int
	TotalPrice decimal.Decimal
	Currency   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem snapshots the unit price when the product was added.
type CartItem struct {
	ProductID uuid.UUID
	Name      string
	Image     string
	Quantity  int
	Price     decimal.Decimal
	Total     decimal.Decimal
}

func NewCart(userID uuid.UUID, currency string) *Cart {
	return &Cart{
		UserID:     userID,
		Currency:   currency,
		TotalPrice: decimal.Zero,
	}
}

// Recalculate refreshes line totals and cart totals from the item list.
func (c *Cart) Recalculate() {
	c.TotalItems = 0
	c.TotalPrice = decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.Total = item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		c.TotalItems += item.Quantity
		c.TotalPrice = c.TotalPrice.Add(item.Total)
	}
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	return slices.IndexFunc(c.Items, func(item CartItem) bool {
		return item.ProductID == productID
	})
}

// Item returns the line for productID, if present.
func (c *Cart) Item(productID uuid.UUID) (CartItem, bool) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return CartItem{}, false
	}

	return c.Items[idx], true
}

// QuantityOf returns how many units of productID are in the cart.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	item, _ := c.Item(productID)

	return item.Quantity
}

// Add puts quantity more units of the product into the cart, creating the line if needed.
func (c *Cart) Add(product *Product, quantity int) {
	if idx := c.indexOf(product.ID); idx >= 0 {
		c.Items[idx].Quantity += quantity
		c.Items[idx].Price = product.FinalPrice
	} else {
		c.Items = append(c.Items, CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     firstImageURL(product.Images),
			Quantity:  quantity,
			Price:     product.FinalPrice,
		})
	}
	c.Recalculate()
}

// SetQuantity replaces a line's quantity. It reports false when the product is not in the cart.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Items[idx].Quantity = quantity
	c.Recalculate()

	return true
}

// Remove drops a line. It reports false when the product is not in the cart.
func (c *Cart) Remove(productID uuid.UUID) bool {
	idx := c.indexOf(productID)
	if idx < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, idx, idx+1)
	c.Recalculate()

	return true
}

func (c *Cart) Clear() {
	c.Items = nil
	c.Recalculate()
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func firstImageURL(images []ProductImage) string {
	if len(images) == 0 {
		return ""
	}

	return images[0].URL
}
