package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderActivity is one order event as delivered to the worker. MessageID is
// the broker's delivery ID, so redeliveries collapse onto one row.
type OrderActivity struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	MessageID      string
	Type           string
	Status         OrderStatus
	PreviousStatus OrderStatus
	RequestID      string
	Payload        []byte
	OccurredAt     time.Time
	CreatedAt      time.Time
}
