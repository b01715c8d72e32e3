package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the kitchen-facing progression of a placed order.
type OrderStatus string

const (
	OrderStatusPaymentPending   OrderStatus = "PAYMENT_PENDING"
	OrderStatusPaymentConfirmed OrderStatus = "PAYMENT_CONFIRMED"
	OrderStatusInPreparation    OrderStatus = "IN_PREPARATION"
	OrderStatusReadyForPickup   OrderStatus = "READY_FOR_PICKUP"
	OrderStatusPickedUp         OrderStatus = "PICKED_UP"
	OrderStatusCanceled         OrderStatus = "CANCELED"
)

// String representation (for logging)
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is allowed.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPickedUp || s == OrderStatusCanceled
}

// InvalidTransitionError carries both sides of a refused status change.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition from %s to %s", e.From, e.To)
}

// CanTransitionTo encodes the forward-only progression plus cancellation
// from any non-terminal state. A picked-up order cannot be cancelled.
func CanTransitionTo(from, to OrderStatus) bool {
	if from.IsTerminal() {
		return false
	}
	switch to {
	case OrderStatusCanceled:
		return true
	case OrderStatusPaymentConfirmed:
		return from == OrderStatusPaymentPending
	case OrderStatusInPreparation:
		return from == OrderStatusPaymentConfirmed
	case OrderStatusReadyForPickup:
		return from == OrderStatusInPreparation
	case OrderStatusPickedUp:
		return from == OrderStatusReadyForPickup
	default:
		return false
	}
}

// OrderItem is an immutable historical record: quantity and unit price are
// copied from the cart line at placement and never re-read from the catalog.
type OrderItem struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Note        string  `json:"note,omitempty"`
}

// Order is the persisted, kitchen-facing record created once payment is
// approved. Number is the customer-facing sequential identifier, distinct
// from the internal id. Orders are never deleted; cancellation is a status.
type Order struct {
	ID          string      `json:"id"`
	Number      int64       `json:"number"`
	CustomerID  string      `json:"customer_id,omitempty"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewOrderFromCart builds the order for an approved payment, copying every
// cart line at its captured price. The sequential number is assigned later
// by the store, inside the placement transaction.
func NewOrderFromCart(cart *Cart, customerID string) *Order {
	items := make([]OrderItem, len(cart.Items))
	var total float64
	for i, line := range cart.Items {
		items[i] = OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
			Note:        line.Note,
		}
		total += line.Subtotal()
	}
	now := time.Now()
	return &Order{
		ID:          uuid.New().String(),
		CustomerID:  customerID,
		Status:      OrderStatusPaymentConfirmed,
		Items:       items,
		TotalAmount: total,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TransitionTo advances the state machine or fails with the pair of states.
func (o *Order) TransitionTo(to OrderStatus) error {
	if !CanTransitionTo(o.Status, to) {
		return &InvalidTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}
