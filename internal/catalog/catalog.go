package catalog

import (
	"context"
	"errors"
)

// Common errors returned by the catalog
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Product is the read model the ordering flow consumes from the catalog.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       float64
	Stock       int
	Purchasable bool
}

// Adjustment is one product/quantity pair in a stock mutation.
type Adjustment struct {
	ProductID int64
	Quantity  int
}

// Catalog is the product lookup and stock collaborator of the ordering core.
// The rest of the product CRUD lives outside this module.
type Catalog interface {
	// GetProduct returns price, stock and display data for one product
	GetProduct(ctx context.Context, id int64) (*Product, error)

	// DecrementStock applies all adjustments or none of them.
	// Fails with ErrProductNotFound or ErrInsufficientStock before touching anything.
	DecrementStock(ctx context.Context, adjustments []Adjustment) error

	// RestoreStock returns previously decremented quantities to the shelf
	RestoreStock(ctx context.Context, adjustments []Adjustment) error
}
