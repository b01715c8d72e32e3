package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrEmptyCart       = errors.New("cart is empty, nothing to confirm")
)

// CartItem is a single line in a session cart. Unit price is the catalog
// price at the moment the product was first added.
type CartItem struct {
	ID        string     `json:"id" bson:"id"`
	Product   ProductRef `json:"product" bson:"product"`
	Quantity  int        `json:"quantity" bson:"quantity"`
	Note      string     `json:"note,omitempty" bson:"note,omitempty"`
	AddedAt   time.Time  `json:"added_at" bson:"added_at"`
}

// Subtotal is quantity times the captured unit price.
func (i CartItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Product.Price
}

// Cart holds the session-scoped selection awaiting checkout. One cart per
// session id; totals are recomputed after every mutation and never stored
// stale.
type Cart struct {
	SessionID string     `json:"session_id" bson:"_id"`
	Items     []CartItem `json:"items" bson:"items"`
	Subtotal  float64    `json:"subtotal" bson:"subtotal"`
	Total     float64    `json:"total" bson:"total"`
	Confirmed bool       `json:"confirmed" bson:"confirmed"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// NewCart creates an empty cart for the session.
func NewCart(sessionID string) *Cart {
	now := time.Now()
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddItem merges the quantity into an existing line for the same product or
// appends a new line capturing the product's current price. A non-empty note
// replaces the line's note (last write wins). Returns the affected line.
func (c *Cart) AddItem(product ProductRef, quantity int, note string) (*CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	now := time.Now()
	for i := range c.Items {
		if c.Items[i].Product.ID == product.ID {
			c.Items[i].Quantity += quantity
			if note != "" {
				c.Items[i].Note = note
			}
			c.recompute(now)
			return &c.Items[i], nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ID:       uuid.New().String(),
		Product:  product,
		Quantity: quantity,
		Note:     note,
		AddedAt:  now,
	})
	c.recompute(now)
	return &c.Items[len(c.Items)-1], nil
}

// RemoveItem deletes the whole line; there is no partial-quantity removal.
func (c *Cart) RemoveItem(itemID string) error {
	for i, item := range c.Items {
		if item.ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.recompute(time.Now())
			return nil
		}
	}
	return ErrItemNotFound
}

// Confirm marks the cart ready for checkout. Confirming an already confirmed
// cart is a no-op; confirming an empty cart is refused.
func (c *Cart) Confirm() error {
	if len(c.Items) == 0 {
		return ErrEmptyCart
	}
	if c.Confirmed {
		return nil
	}
	c.Confirmed = true
	c.UpdatedAt = time.Now()
	return nil
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Total is reserved for future tax/discount; today it equals the subtotal.
func (c *Cart) recompute(now time.Time) {
	var sum float64
	for _, item := range c.Items {
		sum += item.Subtotal()
	}
	c.Subtotal = sum
	c.Total = sum
	c.UpdatedAt = now
}
