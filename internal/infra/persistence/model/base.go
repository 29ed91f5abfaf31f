// Package model holds the GORM persistence models, one per table.
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UUIDKey is the primary key shared by every table. IDs are UUIDv7 so they
// sort by creation time.
type UUIDKey struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// BeforeCreate assigns an ID when the caller has not.
func (k *UUIDKey) BeforeCreate(_ *gorm.DB) error {
	if k.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	k.ID = id

	return nil
}

// All lists every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&ProductModel{},
		&ReviewModel{},
		&WishlistItemModel{},
		&CartModel{},
		&CartItemModel{},
		&CheckoutModel{},
		&OrderModel{},
		&OrderItemModel{},
		&PaymentModel{},
		&InventoryEntryModel{},
		&OrderActivityModel{},
	}
}
