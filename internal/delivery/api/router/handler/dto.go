package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Response views. Entities carry no JSON tags so nothing (password hashes,
// card numbers) reaches a client without passing through one of these.

type UserResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         entity.Role    `json:"role"`
	Phone        string         `json:"phone,omitempty"`
	ProfileImage string         `json:"profileImage,omitempty"`
	Address      entity.Address `json:"address"`
	IsActive     bool           `json:"isActive"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func toUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}

	return &UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Phone:        u.Phone,
		ProfileImage: u.ProfileImage,
		Address:      u.Address,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func toUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}

	return out
}

type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ParentID    *uuid.UUID `json:"parentId,omitempty"`
	Description string     `json:"description,omitempty"`
}

func toCategoryResponse(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}

	return &CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		ParentID:    c.ParentID,
		Description: c.Description,
	}
}

type ProductResponse struct {
	ID                uuid.UUID                 `json:"id"`
	Name              string                    `json:"name"`
	Slug              string                    `json:"slug"`
	Description       entity.ProductDescription `json:"description"`
	Price             decimal.Decimal           `json:"price"`
	Discount          int                       `json:"discount"`
	FinalPrice        decimal.Decimal           `json:"finalPrice"`
	Currency          string                    `json:"currency"`
	Category          *CategoryResponse         `json:"category,omitempty"`
	Brand             string                    `json:"brand,omitempty"`
	SKU               string                    `json:"sku,omitempty"`
	Images            []entity.ProductImage     `json:"images"`
	Stock             int                       `json:"stock"`
	LowStockThreshold int                       `json:"lowStockThreshold"`
	StockStatus       entity.StockStatus        `json:"stockStatus"`
	LastRestockedAt   *time.Time                `json:"lastRestockedAt,omitempty"`
	IsActive          bool                      `json:"isActive"`
	RatingAvg         float64                   `json:"ratingAvg"`
	RatingCount       int                       `json:"ratingCount"`
	CreatedAt         time.Time                 `json:"createdAt"`
	UpdatedAt         time.Time                 `json:"updatedAt"`
}

func toProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	images := p.Images
	if images == nil {
		images = []entity.ProductImage{}
	}

	return &ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Price:             p.Price,
		Discount:          p.Discount,
		FinalPrice:        p.FinalPrice,
		Currency:          p.Currency,
		Category:          toCategoryResponse(p.Category),
		Brand:             p.Brand,
		SKU:               p.SKU,
		Images:            images,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		StockStatus:       p.StockStatus(),
		LastRestockedAt:   p.LastRestockedAt,
		IsActive:          p.IsActive,
		RatingAvg:         p.RatingAvg,
		RatingCount:       p.RatingCount,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toProductResponses(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}

	return out
}

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	UserID    uuid.UUID `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReviewResponse(r *entity.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

type CartItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems int                `json:"totalItems"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Currency   string             `json:"currency"`
}

func toCartResponse(c *entity.Cart) *CartResponse {
	if c == nil {
		return nil
	}

	items := make([]CartItemResponse, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		})
	}

	return &CartResponse{
		Items:      items,
		TotalItems: c.TotalItems,
		TotalPrice: c.TotalPrice,
		Currency:   c.Currency,
	}
}

type CheckoutResponse struct {
	Step           entity.CheckoutStep    `json:"step"`
	Address        entity.ShippingAddress `json:"address"`
	Delivery       entity.DeliveryDetails `json:"delivery"`
	Payment        entity.PaymentDetails  `json:"payment"`
	CompletedSteps []entity.CheckoutStep  `json:"completedSteps"`
	CanConfirm     bool                   `json:"canConfirm"`
}

func toCheckoutResponse(c *entity.Checkout) *CheckoutResponse {
	completed := make([]entity.CheckoutStep, 0, 3)
	if c.AddressComplete {
		completed = append(completed, entity.StepAddress)
	}
	if c.DeliveryComplete {
		completed = append(completed, entity.StepDelivery)
	}
	if c.PaymentComplete {
		completed = append(completed, entity.StepPayment)
	}

	return &CheckoutResponse{
		Step:           c.CurrentStep(),
		Address:        c.Address,
		Delivery:       c.Delivery,
		Payment:        c.Payment,
		CompletedSteps: completed,
		CanConfirm:     c.CanConfirm(),
	}
}

type PaymentResponse struct {
	ID            uuid.UUID              `json:"id"`
	Method        entity.PaymentMethod   `json:"method"`
	Provider      entity.PaymentProvider `json:"provider"`
	TransactionID string                 `json:"transactionId,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      string                 `json:"currency"`
	Status        entity.PaymentStatus   `json:"status"`
	PaidAt        *time.Time             `json:"paidAt,omitempty"`
}

func toPaymentResponse(p *entity.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	return &PaymentResponse{
		ID:            p.ID,
		Method:        p.Method,
		Provider:      p.Provider,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Status:        p.Status,
		PaidAt:        p.PaidAt,
	}
}

type OrderItemResponse struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// CustomerRef is the slice of the customer shown next to an order.
type CustomerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type OrderResponse struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"userId"`
	Customer        *CustomerRef           `json:"customer,omitempty"`
	Items           []OrderItemResponse    `json:"items"`
	ItemCount       int                    `json:"itemCount"`
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	Delivery        entity.DeliveryDetails `json:"delivery"`
	Payment         *PaymentResponse       `json:"payment,omitempty"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	Currency        string                 `json:"currency"`
	Status          entity.OrderStatus     `json:"status"`
	PlacedAt        time.Time              `json:"placedAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func toOrderResponse(o *entity.Order) *OrderResponse {
	if o == nil {
		return nil
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Total:     item.Total,
		})
	}

	var customer *CustomerRef
	if o.Customer != nil {
		customer = &CustomerRef{ID: o.Customer.ID, Name: o.Customer.Name, Email: o.Customer.Email}
	}

	return &OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Customer:        customer,
		Items:           items,
		ItemCount:       o.ItemCount(),
		ShippingAddress: o.ShippingAddress,
		Delivery:        o.Delivery,
		Payment:         toPaymentResponse(o.Payment),
		TotalAmount:     o.TotalAmount,
		Currency:        o.Currency,
		Status:          o.Status,
		PlacedAt:        o.PlacedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func toOrderResponses(orders []*entity.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}

	return out
}

type InventoryEntryResponse struct {
	ID        uuid.UUID              `json:"id"`
	ProductID uuid.UUID              `json:"productId"`
	Change    int                    `json:"change"`
	Reason    entity.InventoryReason `json:"reason"`
	OrderID   *uuid.UUID             `json:"orderId,omitempty"`
	CreatedBy *uuid.UUID             `json:"createdBy,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

func toInventoryEntryResponse(e *entity.InventoryEntry) *InventoryEntryResponse {
	return &InventoryEntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		Change:    e.Change,
		Reason:    e.Reason,
		OrderID:   e.OrderID,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

type OrderActivityResponse struct {
	ID             uuid.UUID          `json:"id"`
	Type           string             `json:"type"`
	Status         entity.OrderStatus `json:"status"`
	PreviousStatus entity.OrderStatus `json:"previousStatus,omitempty"`
	RequestID      string             `json:"requestId,omitempty"`
	OccurredAt     time.Time          `json:"occurredAt"`
	RecordedAt     time.Time          `json:"recordedAt"`
}

func toOrderActivityResponse(a *entity.OrderActivity) *OrderActivityResponse {
	return &OrderActivityResponse{
		ID:             a.ID,
		Type:           a.Type,
		Status:         a.Status,
		PreviousStatus: a.PreviousStatus,
		RequestID:      a.RequestID,
		OccurredAt:     a.OccurredAt,
		RecordedAt:     a.CreatedAt,
	}
}

type CustomerResponse struct {
	*UserResponse
	TotalOrders int             `json:"totalOrders"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
}

func toCustomerResponse(s *entity.CustomerSummary) *CustomerResponse {
	return &CustomerResponse{
		UserResponse: toUserResponse(s.User),
		TotalOrders:  s.TotalOrders,
		TotalSpent:   s.TotalSpent,
	}
}

type PaginationResponse struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func toPaginationResponse(p usecase.Pagination) PaginationResponse {
	return PaginationResponse{Page: p.Page, Limit: p.Limit, Total: p.Total, Pages: p.Pages}
}
