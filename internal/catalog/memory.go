package catalog

import (
	"context"
	"sync"
)

// MemoryCatalog implements Catalog with in-memory storage
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[int64]*Product
}

// NewMemoryCatalog creates an empty in-memory catalog
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		products: make(map[int64]*Product),
	}
}

// SetProduct sets or replaces a product (used for initialization)
func (c *MemoryCatalog) SetProduct(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := p
	c.products[p.ID] = &cp
}

// GetProduct returns a copy of the product or ErrProductNotFound.
func (c *MemoryCatalog) GetProduct(_ context.Context, id int64) (*Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, exists := c.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// DecrementStock validates every adjustment before applying any, so two
// sessions racing for the last units never leave a partial decrement.
func (c *MemoryCatalog) DecrementStock(_ context.Context, adjustments []Adjustment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// First pass: validate all items have sufficient stock
	for _, adj := range adjustments {
		p, exists := c.products[adj.ProductID]
		if !exists {
			return ErrProductNotFound
		}
		if p.Stock < adj.Quantity {
			return ErrInsufficientStock
		}
	}

	// Second pass: apply
	for _, adj := range adjustments {
		c.products[adj.ProductID].Stock -= adj.Quantity
	}
	return nil
}

// RestoreStock puts quantities back after a cancellation.
func (c *MemoryCatalog) RestoreStock(_ context.Context, adjustments []Adjustment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, adj := range adjustments {
		p, exists := c.products[adj.ProductID]
		if !exists {
			return ErrProductNotFound
		}
		p.Stock += adj.Quantity
	}
	return nil
}
