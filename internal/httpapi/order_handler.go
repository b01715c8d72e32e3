package httpapi

import (
	"context"
	"net/http"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderResponseDTO struct {
	respMeta
	Order *domain.Order `json:"order"`
}

type orderListResponseDTO struct {
	respMeta
	Orders []*domain.Order `json:"orders"`
}

// Get handles GET /pedidos/{orderId}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponseDTO{respMeta: meta(statusSucesso), Order: order})
}

// List handles GET /pedidos, the kitchen listing.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderListResponseDTO{respMeta: meta(statusSucesso), Orders: orders})
}

// StartPreparing handles POST /pedidos/{orderId}/preparar
func (h *OrderHandler) StartPreparing(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.StartPreparing)
}

// MarkReady handles POST /pedidos/{orderId}/pronto
func (h *OrderHandler) MarkReady(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.MarkReady)
}

// ConfirmPickup handles POST /pedidos/{orderId}/retirado
func (h *OrderHandler) ConfirmPickup(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.ConfirmPickup)
}

// Cancel handles POST /pedidos/{orderId}/cancelar
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.orders.Cancel)
}

func (h *OrderHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, orderID string) (*domain.Order, error)) {
	order, err := fn(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orderResponseDTO{respMeta: meta(statusSucesso), Order: order})
}
