package entity

import (
	"time"

	"github.com/google/uuid"
)

type InventoryReason string

const (
	InventorySale       InventoryReason = "sale"
	InventoryRefund     InventoryReason = "refund"
	InventoryRestock    InventoryReason = "restock"
	InventoryAdjustment InventoryReason = "adjustment"
)

// InventoryEntry is one append-only stock ledger record.
type InventoryEntry struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Change    int
	Reason    InventoryReason
	OrderID   *uuid.UUID
	CreatedBy *uuid.UUID
	CreatedAt time.Time
}

// ReasonForChange classifies a manual stock change: additions are restocks,
// everything else is an adjustment.
func ReasonForChange(change int) InventoryReason {
	if change > 0 {
		return InventoryRestock
	}

	return InventoryAdjustment
}
