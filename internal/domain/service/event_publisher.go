package service

import (
	"context"
	"time"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published whenever an order is placed or changes status.
type OrderEvent struct {
	RequestID      string    `json:"request_id,omitempty"`
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TotalAmount    string    `json:"total_amount"`
	Currency       string    `json:"currency"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher delivers order events to downstream consumers.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error
	Close() error
}
