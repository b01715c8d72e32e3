package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount      = errors.New("payment amount must be greater than zero")
	ErrPaymentNotPending  = errors.New("payment is no longer pending")
	ErrPaymentNotApproved = errors.New("payment is not approved")
	ErrAlreadyLinked      = errors.New("payment is already linked to an order")
	ErrInvalidDecision    = errors.New("decision must be approved or declined")
)

// PaymentStatus follows a one-way machine: pending moves to approved or
// declined exactly once and never back.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentDeclined PaymentStatus = "declined"
	PaymentError    PaymentStatus = "error"
)

// String representation (for logging)
func (s PaymentStatus) String() string {
	return string(s)
}

// TimerState is the answer to a countdown poll for a pending payment.
type TimerState struct {
	Active           bool
	SecondsRemaining int64
}

// Payment is one attempt to collect money for a confirmed cart. Its id is
// the external reference of the customer-facing QR flow.
type Payment struct {
	ID          string        `json:"id"`
	SessionID   string        `json:"session_id"`
	Amount      float64       `json:"amount"`
	Status      PaymentStatus `json:"status"`
	QRCodeURL   string        `json:"qr_code_url,omitempty"`
	QRCodeText  string        `json:"qr_code_text,omitempty"`
	ExpiresAt   time.Time     `json:"expires_at,omitempty"`
	ExternalRef string        `json:"external_ref,omitempty"`
	Method      string        `json:"method,omitempty"`
	OrderID     string        `json:"order_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewPayment creates a pending payment for the session.
func NewPayment(sessionID string, amount float64) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	now := time.Now()
	return &Payment{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Amount:    amount,
		Status:    PaymentPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IssueQRCode attaches the gateway QR code and starts the expiration clock.
// Only a pending payment carries QR fields.
func (p *Payment) IssueQRCode(qrURL, qrText string, ttl time.Duration) error {
	if p.Status != PaymentPending {
		return ErrPaymentNotPending
	}
	now := time.Now()
	p.QRCodeURL = qrURL
	p.QRCodeText = qrText
	p.ExpiresAt = now.Add(ttl)
	p.UpdatedAt = now
	return nil
}

// Confirm applies the gateway decision. This is a one-time transition; a
// second call fails and leaves the first decision untouched.
func (p *Payment) Confirm(decision PaymentStatus, externalRef, method string) error {
	if decision != PaymentApproved && decision != PaymentDeclined {
		return ErrInvalidDecision
	}
	if p.Status != PaymentPending {
		return ErrPaymentNotPending
	}
	p.Status = decision
	p.ExternalRef = externalRef
	p.Method = method
	p.UpdatedAt = time.Now()
	return nil
}

// LinkOrder attaches the order created from this payment. A payment links to
// at most one order, and only after approval.
func (p *Payment) LinkOrder(orderID string) error {
	if p.Status != PaymentApproved {
		return ErrPaymentNotApproved
	}
	if p.OrderID != "" {
		return ErrAlreadyLinked
	}
	p.OrderID = orderID
	p.UpdatedAt = time.Now()
	return nil
}

// Timer reports the remaining QR countdown. Anything other than a live
// pending payment reads as expired; the expiration field only means
// something while we are still waiting for the customer to pay.
func (p *Payment) Timer(now time.Time) TimerState {
	if p.Status != PaymentPending || !now.Before(p.ExpiresAt) {
		return TimerState{Active: false, SecondsRemaining: 0}
	}
	return TimerState{
		Active:           true,
		SecondsRemaining: int64(p.ExpiresAt.Sub(now).Seconds()),
	}
}

// Expired reports whether a pending payment's QR window has closed.
func (p *Payment) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}
