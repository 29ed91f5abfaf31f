package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"storefront/config"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryLevel(t *testing.T) {
	tests := []struct {
		name string
		want qrcode.RecoveryLevel
	}{
		{"L", qrcode.Low},
		{"M", qrcode.Medium},
		{"q", qrcode.High},
		{"H", qrcode.Highest},
		{"invalid", qrcode.Medium},
		{"", qrcode.Medium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recoveryLevel(tt.name))
		})
	}
}

func TestQRCodeService_GenerateOrderQR(t *testing.T) {
	svc := NewQRCodeService(&config.Config{
		QRCode: &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "H"},
		Store:  &config.StoreConfig{TrackingBaseURL: "https://shop.example.com/orders/"},
	})

	pngBytes, err := svc.GenerateOrderQR(uuid.New())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}

func TestQRCodeService_TrackingURL(t *testing.T) {
	id := uuid.MustParse("0190f1c2-7a3b-7c4d-8e5f-000000000001")

	withBase := NewQRCodeService(&config.Config{Store: &config.StoreConfig{TrackingBaseURL: "https://shop.example.com/orders/"}}).(*qrcodeService)
	assert.Equal(t, "https://shop.example.com/orders/"+id.String(), withBase.TrackingURL(id))

	bare := NewQRCodeService(&config.Config{}).(*qrcodeService)
	assert.Equal(t, id.String(), bare.TrackingURL(id))
	assert.Equal(t, defaultSize, bare.size)
}
