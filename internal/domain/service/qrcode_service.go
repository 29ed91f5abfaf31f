package service

import "github.com/google/uuid"

// QRCodeService renders order tracking codes.
type QRCodeService interface {
	// GenerateOrderQR returns a PNG encoding the order's tracking link.
	GenerateOrderQR(orderID uuid.UUID) ([]byte, error)
}
