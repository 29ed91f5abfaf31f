// Package qrcode renders order tracking links as PNG QR codes.
package qrcode

import (
	"strings"

	"storefront/config"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	trackingBaseURL      string
}

// NewQRCodeService reads qrcode.size, qrcode.errorCorrectionLevel (L, M, Q, H)
// and store.trackingBaseUrl.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := "M"
	if cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = cfg.QRCode.ErrorCorrectionLevel
	}

	base := ""
	if cfg.Store != nil {
		base = cfg.Store.TrackingBaseURL
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: recoveryLevel(level),
		trackingBaseURL:      strings.TrimRight(base, "/"),
	}
}

func recoveryLevel(name string) qrcode.RecoveryLevel {
	switch strings.ToUpper(name) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// TrackingURL is the link encoded for an order; without a base URL it is
// the bare order ID.
func (s *qrcodeService) TrackingURL(orderID uuid.UUID) string {
	if s.trackingBaseURL == "" {
		return orderID.String()
	}

	return s.trackingBaseURL + "/" + orderID.String()
}

func (s *qrcodeService) GenerateOrderQR(orderID uuid.UUID) ([]byte, error) {
	code, err := qrcode.New(s.TrackingURL(orderID), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	png, err := code.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render QR code")
	}

	return png, nil
}
