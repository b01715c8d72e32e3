package gateway

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps another gateway with a circuit breaker so a flapping
// payment provider fails fast instead of stalling every checkout.
type BreakerGateway struct {
	inner   PaymentGateway
	breaker *gobreaker.CircuitBreaker[*QRCode]
}

func NewBreakerGateway(inner PaymentGateway) *BreakerGateway {
	settings := gobreaker.Settings{
		Name:    "payment-gateway",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerGateway{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*QRCode](settings),
	}
}

func (g *BreakerGateway) Generate(ctx context.Context, paymentID string, amount float64) (*QRCode, error) {
	return g.breaker.Execute(func() (*QRCode, error) {
		return g.inner.Generate(ctx, paymentID, amount)
	})
}
