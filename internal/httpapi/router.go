package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = fmt.Sprintf("req-%d", time.Now().UnixNano())
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

// NewRouter assembles the totem's HTTP surface.
func NewRouter(cart *CartHandler, payment *PaymentHandler, order *OrderHandler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/carrinho", func(r chi.Router) {
		r.Post("/adicionar", cart.AddItem)
		r.Post("/confirmar", cart.Confirm)
		r.Get("/visualizar", cart.View)
		r.Delete("/remover", cart.RemoveItem)
	})

	r.Route("/pagamento", func(r chi.Router) {
		r.Post("/gerar-qrcode", payment.GenerateQRCode)
		r.Post("/confirmar", payment.ConfirmPayment)
		r.Post("/registrar-pedido", payment.PlaceOrder)
		r.Get("/verificar-timer/{paymentId}", payment.CheckTimer)
	})

	r.Route("/pedidos", func(r chi.Router) {
		r.Get("/", order.List)
		r.Get("/{orderId}", order.Get)
		r.Post("/{orderId}/preparar", order.StartPreparing)
		r.Post("/{orderId}/pronto", order.MarkReady)
		r.Post("/{orderId}/retirado", order.ConfirmPickup)
		r.Post("/{orderId}/cancelar", order.Cancel)
	})

	return r
}
