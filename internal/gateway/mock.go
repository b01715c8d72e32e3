package gateway

import (
	"context"
	"fmt"
)

const defaultQRTTLSeconds = 300

// MockGateway fabricates QR codes locally. It stands in for the real
// provider integration in development and tests.
type MockGateway struct {
	BaseURL    string
	TTLSeconds int64
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		BaseURL:    "https://qr.mercadofake.local",
		TTLSeconds: defaultQRTTLSeconds,
	}
}

func (g *MockGateway) Generate(_ context.Context, paymentID string, amount float64) (*QRCode, error) {
	return &QRCode{
		URL:        fmt.Sprintf("%s/pay/%s", g.BaseURL, paymentID),
		Text:       fmt.Sprintf("PIX|%s|%.2f", paymentID, amount),
		TTLSeconds: g.TTLSeconds,
	}, nil
}
