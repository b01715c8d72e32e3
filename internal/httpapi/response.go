package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/service"
)

// Response statuses carried by every body, per the totem's client contract.
const (
	statusSucesso = "sucesso"
	statusErro    = "erro"
)

type respMeta struct {
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

func meta(status string) respMeta {
	return respMeta{Timestamp: time.Now(), Status: status}
}

type errorResponse struct {
	respMeta
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{
		respMeta: meta(statusErro),
		Error:    message,
		Code:     code,
	})
}

// handleDomainError translates sentinel and typed errors from the aggregates
// and services into HTTP statuses. Anything unrecognized is a 500 with no
// internal detail leaked to the client.
func handleDomainError(w http.ResponseWriter, err error) {
	var transition *domain.InvalidTransitionError
	if errors.As(err, &transition) {
		respondError(w, http.StatusConflict, "invalid_status_transition", transition.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidDecision):
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())

	case errors.Is(err, repository.ErrCartNotFound),
		errors.Is(err, repository.ErrPaymentNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrPaymentNotPending),
		errors.Is(err, domain.ErrPaymentNotApproved),
		errors.Is(err, domain.ErrAlreadyLinked),
		errors.Is(err, service.ErrCartNotConfirmed),
		errors.Is(err, service.ErrPaymentAlreadyResolved),
		errors.Is(err, service.ErrSessionMismatch),
		errors.Is(err, service.ErrAlreadyPreparing),
		errors.Is(err, service.ErrProductUnavailable):
		respondError(w, http.StatusConflict, "state_conflict", err.Error())

	case errors.Is(err, service.ErrAmountMismatch),
		errors.Is(err, catalog.ErrInsufficientStock):
		respondError(w, http.StatusUnprocessableEntity, "consistency_error", err.Error())

	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
