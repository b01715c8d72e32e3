package gateway

import "context"

// QRCode is what the payment provider hands back for a charge request.
type QRCode struct {
	URL        string
	Text       string
	TTLSeconds int64
}

// PaymentGateway issues the customer-facing QR code for a payment attempt.
// Confirmation arrives later through the webhook endpoint, not through this
// interface.
type PaymentGateway interface {
	Generate(ctx context.Context, paymentID string, amount float64) (*QRCode, error)
}
