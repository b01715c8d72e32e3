package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment("s1", 37.80)
	require.NoError(t, err)
	return p
}

func TestNewPayment_InvalidAmount(t *testing.T) {
	_, err := NewPayment("s1", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPayment("s1", -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPayment_IssueQRCode(t *testing.T) {
	p := pendingPayment(t)

	require.NoError(t, p.IssueQRCode("https://qr/abc", "PIX|abc", 5*time.Minute))
	assert.Equal(t, "https://qr/abc", p.QRCodeURL)
	assert.True(t, p.ExpiresAt.After(time.Now()))

	require.NoError(t, p.Confirm(PaymentApproved, "TXN-1", "pix"))
	err := p.IssueQRCode("https://qr/other", "PIX|other", 5*time.Minute)
	assert.ErrorIs(t, err, ErrPaymentNotPending)
	assert.Equal(t, "https://qr/abc", p.QRCodeURL)
}

func TestPayment_Confirm_OneShot(t *testing.T) {
	p := pendingPayment(t)

	require.NoError(t, p.Confirm(PaymentApproved, "TXN-1", "pix"))
	assert.Equal(t, PaymentApproved, p.Status)

	err := p.Confirm(PaymentDeclined, "TXN-2", "card")
	assert.ErrorIs(t, err, ErrPaymentNotPending)
	// first decision untouched
	assert.Equal(t, PaymentApproved, p.Status)
	assert.Equal(t, "TXN-1", p.ExternalRef)
	assert.Equal(t, "pix", p.Method)
}

func TestPayment_Confirm_InvalidDecision(t *testing.T) {
	p := pendingPayment(t)

	err := p.Confirm(PaymentPending, "TXN-1", "pix")
	assert.ErrorIs(t, err, ErrInvalidDecision)
	assert.Equal(t, PaymentPending, p.Status)
}

func TestPayment_LinkOrder(t *testing.T) {
	p := pendingPayment(t)

	err := p.LinkOrder("order-1")
	assert.ErrorIs(t, err, ErrPaymentNotApproved)

	require.NoError(t, p.Confirm(PaymentApproved, "TXN-1", "pix"))
	require.NoError(t, p.LinkOrder("order-1"))
	assert.Equal(t, "order-1", p.OrderID)

	err = p.LinkOrder("order-2")
	assert.ErrorIs(t, err, ErrAlreadyLinked)
	assert.Equal(t, "order-1", p.OrderID)
}

func TestPayment_Timer(t *testing.T) {
	p := pendingPayment(t)
	require.NoError(t, p.IssueQRCode("https://qr/abc", "PIX|abc", 5*time.Minute))

	state := p.Timer(time.Now())
	assert.True(t, state.Active)
	assert.Greater(t, state.SecondsRemaining, int64(0))

	// past expiration
	state = p.Timer(p.ExpiresAt.Add(time.Second))
	assert.False(t, state.Active)
	assert.Equal(t, int64(0), state.SecondsRemaining)
}

func TestPayment_Timer_NonPendingAlwaysExpired(t *testing.T) {
	p := pendingPayment(t)
	require.NoError(t, p.IssueQRCode("https://qr/abc", "PIX|abc", time.Hour))
	require.NoError(t, p.Confirm(PaymentDeclined, "TXN-1", "pix"))

	// expiration is far in the future, but a resolved payment reads expired
	state := p.Timer(time.Now())
	assert.False(t, state.Active)
	assert.Equal(t, int64(0), state.SecondsRemaining)
}
