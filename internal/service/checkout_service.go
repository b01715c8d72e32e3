package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/gateway"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// CheckoutService drives the cart-to-payment-to-order sequence: QR issuance
// for a confirmed cart, webhook confirmation, and the atomic conversion of
// an approved payment into a persisted order.
type CheckoutService struct {
	carts    repository.CartRepository
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	outbox   repository.OutboxRepository
	catalog  catalog.Catalog
	gateway  gateway.PaymentGateway
	tx       repository.TxManager

	// StrictAmountCheck rejects a checkout whose claimed amount differs from
	// the cart total. Off by default: the running contract only warns.
	StrictAmountCheck bool
}

func NewCheckoutService(
	carts repository.CartRepository,
	payments repository.PaymentRepository,
	orders repository.OrderRepository,
	outbox repository.OutboxRepository,
	cat catalog.Catalog,
	gw gateway.PaymentGateway,
	tx repository.TxManager,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		payments: payments,
		orders:   orders,
		outbox:   outbox,
		catalog:  cat,
		gateway:  gw,
		tx:       tx,
	}
}

// RequestCheckout issues a payment QR for a confirmed cart. Re-requesting
// while a pending payment is still live returns the same QR, so a
// double-click never charges twice. A resolved payment blocks new attempts
// for the cart's lifetime; an expired pending one is replaced.
func (s *CheckoutService) RequestCheckout(ctx context.Context, sessionID string, claimedAmount float64) (*domain.Payment, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !cart.Confirmed {
		return nil, ErrCartNotConfirmed
	}

	existing, err := s.payments.GetBySession(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrPaymentNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.PaymentApproved, domain.PaymentDeclined:
			return nil, ErrPaymentAlreadyResolved
		case domain.PaymentPending:
			if !existing.Expired(time.Now()) {
				log.Printf("re-issuing QR for session %s, payment %s still pending", sessionID, existing.ID)
				return existing, nil
			}
		}
	}

	if claimedAmount != cart.Total {
		if s.StrictAmountCheck {
			return nil, ErrAmountMismatch
		}
		log.Printf("WARNING: claimed amount %.2f differs from cart total %.2f for session %s", claimedAmount, cart.Total, sessionID)
	}

	payment, err := domain.NewPayment(sessionID, claimedAmount)
	if err != nil {
		return nil, err
	}

	qr, err := s.gateway.Generate(ctx, payment.ID, payment.Amount)
	if err != nil {
		return nil, fmt.Errorf("gateway qr generation failed: %w", err)
	}
	if err := payment.IssueQRCode(qr.URL, qr.Text, time.Duration(qr.TTLSeconds)*time.Second); err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// ConfirmPayment applies the gateway's webhook decision. It never creates
// the order; placement is a separate, explicit step.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, paymentID string, decision domain.PaymentStatus, externalRef string, amountPaid float64, method string) (*domain.Payment, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if amountPaid != payment.Amount {
		return nil, ErrAmountMismatch
	}

	if err := payment.Confirm(decision, externalRef, method); err != nil {
		return nil, err
	}

	if err := s.payments.Save(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// Timer reports the remaining QR countdown for a payment.
func (s *CheckoutService) Timer(ctx context.Context, paymentID string) (domain.TimerState, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return domain.TimerState{}, err
	}
	return payment.Timer(time.Now()), nil
}

// PlaceOrder converts an approved payment plus its cart into a persisted
// order: stock decremented per line, sequential number assigned, payment
// linked, cart deleted. The whole cluster runs inside one transaction and a
// retried call for an already-linked payment returns the existing order,
// which keeps at-least-once webhook delivery safe.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, paymentID, customerID string) (*domain.Order, error) {
	payment, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.SessionID != sessionID {
		return nil, ErrSessionMismatch
	}
	if payment.OrderID == "" && payment.Status != domain.PaymentApproved {
		return nil, domain.ErrPaymentNotApproved
	}

	var order *domain.Order
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// Reload inside the critical section; a concurrent retry may have
		// linked the payment after the check above.
		payment, err = s.payments.GetByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if payment.OrderID != "" {
			order, err = s.orders.GetByID(ctx, payment.OrderID)
			return err
		}

		cart, errCart := s.carts.Get(ctx, sessionID)
		if errCart != nil {
			return errCart
		}

		adjustments := make([]catalog.Adjustment, len(cart.Items))
		for i, line := range cart.Items {
			adjustments[i] = catalog.Adjustment{ProductID: line.Product.ID, Quantity: line.Quantity}
		}

		// Re-validates every line against current stock and applies all
		// decrements or none of them.
		if errStock := s.catalog.DecrementStock(ctx, adjustments); errStock != nil {
			return errStock
		}

		order = domain.NewOrderFromCart(cart, customerID)
		if errCreate := s.orders.Create(ctx, order); errCreate != nil {
			s.compensateStock(ctx, adjustments)
			return errCreate
		}

		if errLink := payment.LinkOrder(order.ID); errLink != nil {
			s.rollbackOrder(ctx, order.ID, adjustments)
			return errLink
		}
		if errSave := s.payments.Save(ctx, payment); errSave != nil {
			s.rollbackOrder(ctx, order.ID, adjustments)
			return errSave
		}

		if errDel := s.carts.Delete(ctx, sessionID); errDel != nil {
			log.Printf("failed to delete cart for session %s after placement: %v", sessionID, errDel)
		}

		s.appendOrderEvent(ctx, EventOrderPlaced, order)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *CheckoutService) compensateStock(ctx context.Context, adjustments []catalog.Adjustment) {
	if err := s.catalog.RestoreStock(ctx, adjustments); err != nil {
		log.Printf("failed to restore stock during rollback: %v", err)
	}
}

type orderDeleter interface {
	Delete(ctx context.Context, id string) error
}

func (s *CheckoutService) rollbackOrder(ctx context.Context, orderID string, adjustments []catalog.Adjustment) {
	s.compensateStock(ctx, adjustments)
	if del, ok := s.orders.(orderDeleter); ok {
		if err := del.Delete(ctx, orderID); err != nil {
			log.Printf("failed to delete order %s during rollback: %v", orderID, err)
		}
	}
}

func (s *CheckoutService) appendOrderEvent(ctx context.Context, eventType string, order *domain.Order) {
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.Number,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
		"items":        order.Items,
		"occurred_at":  time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal order event payload: %v", err)
		return
	}

	errAppend := s.outbox.Append(ctx, &repository.OutboxEvent{
		AggregateID: order.ID,
		EventType:   eventType,
		Payload:     payloadJSON,
	})
	if errAppend != nil {
		log.Printf("failed to append outbox event for order %s: %v", order.ID, errAppend)
	}
}
