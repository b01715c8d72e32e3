package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	checkout *service.CheckoutService
}

func NewPaymentHandler(checkout *service.CheckoutService) *PaymentHandler {
	return &PaymentHandler{checkout: checkout}
}

type generateQRRequestDTO struct {
	SessionID string  `json:"sessionId"`
	Amount    float64 `json:"amount"`
}

type generateQRResponseDTO struct {
	respMeta
	QRURL     string    `json:"qrUrl"`
	QRText    string    `json:"qrText"`
	PaymentID string    `json:"paymentId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// GenerateQRCode handles POST /pagamento/gerar-qrcode
func (h *PaymentHandler) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	var req generateQRRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "sessionId is required")
		return
	}

	payment, err := h.checkout.RequestCheckout(r.Context(), req.SessionID, req.Amount)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, generateQRResponseDTO{
		respMeta:  meta(statusSucesso),
		QRURL:     payment.QRCodeURL,
		QRText:    payment.QRCodeText,
		PaymentID: payment.ID,
		ExpiresAt: payment.ExpiresAt,
	})
}

type confirmPaymentRequestDTO struct {
	PaymentID   string  `json:"paymentId"`
	Decision    string  `json:"decision"`
	ExternalRef string  `json:"externalRef"`
	AmountPaid  float64 `json:"amountPaid"`
	Method      string  `json:"method"`
}

type confirmPaymentResponseDTO struct {
	respMeta
	Confirmed bool `json:"confirmed"`
}

// ConfirmPayment handles POST /pagamento/confirmar, the gateway webhook.
func (h *PaymentHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	var req confirmPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.PaymentID == "" {
		respondError(w, http.StatusBadRequest, "invalid_payment_id", "paymentId is required")
		return
	}

	payment, err := h.checkout.ConfirmPayment(
		r.Context(),
		req.PaymentID,
		domain.PaymentStatus(req.Decision),
		req.ExternalRef,
		req.AmountPaid,
		req.Method,
	)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, confirmPaymentResponseDTO{
		respMeta:  meta(statusSucesso),
		Confirmed: payment.Status == domain.PaymentApproved,
	})
}

type placeOrderRequestDTO struct {
	SessionID  string `json:"sessionId"`
	PaymentID  string `json:"paymentId"`
	CustomerID string `json:"customerId,omitempty"`
}

type placeOrderResponseDTO struct {
	respMeta
	OrderID     string `json:"orderId"`
	OrderNumber int64  `json:"orderNumber"`
}

// PlaceOrder handles POST /pagamento/registrar-pedido
func (h *PaymentHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.SessionID == "" || req.PaymentID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "sessionId and paymentId are required")
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req.SessionID, req.PaymentID, req.CustomerID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, placeOrderResponseDTO{
		respMeta:    meta(statusSucesso),
		OrderID:     order.ID,
		OrderNumber: order.Number,
	})
}

type timerResponseDTO struct {
	Timestamp        time.Time `json:"timestamp"`
	Status           string    `json:"status"`
	SecondsRemaining int64     `json:"secondsRemaining"`
}

// CheckTimer handles GET /pagamento/verificar-timer/{paymentId}. The kiosk
// polls this every second, so the endpoint always answers 200: an unknown
// payment id reads the same as an expired one.
func (h *PaymentHandler) CheckTimer(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "paymentId")

	timer, err := h.checkout.Timer(r.Context(), paymentID)
	if errors.Is(err, repository.ErrPaymentNotFound) {
		timer = domain.TimerState{}
	} else if err != nil {
		handleDomainError(w, err)
		return
	}

	status := "expired"
	if timer.Active {
		status = "active"
	}
	respondJSON(w, http.StatusOK, timerResponseDTO{
		Timestamp:        time.Now(),
		Status:           status,
		SecondsRemaining: timer.SecondsRemaining,
	})
}
