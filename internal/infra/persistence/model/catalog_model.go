package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	UUIDKey
	Name        string     `gorm:"type:varchar(100);not null"`
	Slug        string     `gorm:"type:varchar(120);uniqueIndex;not null"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	Description string     `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ProductDescriptionJSON is the JSON document stored in products.description.
type ProductDescriptionJSON struct {
	Features       []string          `json:"features,omitempty"`
	Details        string            `json:"details,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
}

type ProductImageJSON struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	UUIDKey
	Name              string                                     `gorm:"type:varchar(200);index;not null"`
	Slug              string                                     `gorm:"type:varchar(220);uniqueIndex;not null"`
	Description       datatypes.JSONType[ProductDescriptionJSON] `gorm:"not null"`
	Price             decimal.Decimal                            `gorm:"type:numeric(14,2);not null"`
	Discount          int                                        `gorm:"not null"`
	FinalPrice        decimal.Decimal                            `gorm:"type:numeric(14,2);not null"`
	Currency          string                                     `gorm:"type:varchar(3);not null"`
	CategoryID        *uuid.UUID                                 `gorm:"type:uuid;index"`
	Category          *CategoryModel                             `gorm:"foreignKey:CategoryID"`
	Brand             string                                     `gorm:"type:varchar(100);index"`
	SKU               string                                     `gorm:"type:varchar(64);index"`
	Images            datatypes.JSONSlice[ProductImageJSON]
	Stock             int `gorm:"not null;check:stock >= 0"`
	LowStockThreshold int `gorm:"not null"`
	LastRestockedAt   *time.Time
	IsActive          bool    `gorm:"index;not null"`
	RatingAvg         float64 `gorm:"not null"`
	RatingCount       int     `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// ReviewModel mirrors the 'reviews' table.
type ReviewModel struct {
	UUIDKey
	ProductID uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ReviewModel) TableName() string {
	return "reviews"
}

// WishlistItemModel mirrors the 'wishlist_items' join table.
type WishlistItemModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}

func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}
