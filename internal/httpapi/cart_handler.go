package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/service"
)

type CartHandler struct {
	cart *service.CartService
}

func NewCartHandler(cart *service.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

type addItemRequestDTO struct {
	SessionID string `json:"sessionId"`
	ProductID int64  `json:"productId"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

type addItemResponseDTO struct {
	respMeta
	ItemID       string  `json:"itemId"`
	CartSubtotal float64 `json:"cartSubtotal"`
}

// AddItem handles POST /carrinho/adicionar
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "sessionId is required")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}

	item, subtotal, err := h.cart.AddItem(r.Context(), req.SessionID, req.ProductID, req.Quantity, req.Note)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, addItemResponseDTO{
		respMeta:     meta(statusSucesso),
		ItemID:       item.ID,
		CartSubtotal: subtotal,
	})
}

type confirmCartRequestDTO struct {
	SessionID string `json:"sessionId"`
}

type confirmCartResponseDTO struct {
	respMeta
	Validated bool    `json:"validated"`
	Total     float64 `json:"total"`
	NextStep  string  `json:"nextStep"`
}

// Confirm handles POST /carrinho/confirmar
func (h *CartHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "sessionId is required")
		return
	}

	cart, err := h.cart.Confirm(r.Context(), req.SessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, confirmCartResponseDTO{
		respMeta:  meta(statusSucesso),
		Validated: true,
		Total:     cart.Total,
		NextStep:  "/pagamento/gerar-qrcode",
	})
}

type cartItemDTO struct {
	ItemID      string  `json:"itemId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Category    string  `json:"category"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
	Note        string  `json:"note,omitempty"`
	Subtotal    float64 `json:"subtotal"`
}

type viewCartResponseDTO struct {
	respMeta
	Items    []cartItemDTO `json:"items"`
	Subtotal float64       `json:"subtotal"`
	Total    float64       `json:"total"`
}

// View handles GET /carrinho/visualizar. A session without a cart gets the
// empty-cart shape with HTTP 200.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "sessionId query parameter is required")
		return
	}

	cart, err := h.cart.View(r.Context(), sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, viewCartResponseDTO{
		respMeta: meta(statusSucesso),
		Items:    convertItems(cart.Items),
		Subtotal: cart.Subtotal,
		Total:    cart.Total,
	})
}

type removeItemRequestDTO struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
}

type removeItemResponseDTO struct {
	respMeta
	CartSubtotal float64 `json:"cartSubtotal"`
}

// RemoveItem handles DELETE /carrinho/remover
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" || req.ItemID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "sessionId and itemId are required")
		return
	}

	subtotal, err := h.cart.RemoveItem(r.Context(), req.SessionID, req.ItemID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, removeItemResponseDTO{
		respMeta:     meta(statusSucesso),
		CartSubtotal: subtotal,
	})
}

func convertItems(items []domain.CartItem) []cartItemDTO {
	out := make([]cartItemDTO, len(items))
	for i, item := range items {
		out[i] = cartItemDTO{
			ItemID:      item.ID,
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Category:    item.Product.Category,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
			Note:        item.Note,
			Subtotal:    item.Subtotal(),
		}
	}
	return out
}
