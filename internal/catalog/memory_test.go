package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalog() *MemoryCatalog {
	c := NewMemoryCatalog()
	c.SetProduct(Product{ID: 1, Name: "X-Burger", Price: 18.90, Stock: 50, Purchasable: true})
	c.SetProduct(Product{ID: 2, Name: "Batata Frita", Price: 9.90, Stock: 10, Purchasable: true})
	return c
}

func TestMemoryCatalog_GetProduct(t *testing.T) {
	c := setupCatalog()
	ctx := context.Background()

	p, err := c.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "X-Burger", p.Name)
	assert.Equal(t, 50, p.Stock)

	_, err = c.GetProduct(ctx, 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryCatalog_DecrementStock(t *testing.T) {
	c := setupCatalog()
	ctx := context.Background()

	err := c.DecrementStock(ctx, []Adjustment{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	require.NoError(t, err)

	p1, _ := c.GetProduct(ctx, 1)
	p2, _ := c.GetProduct(ctx, 2)
	assert.Equal(t, 48, p1.Stock)
	assert.Equal(t, 7, p2.Stock)
}

func TestMemoryCatalog_DecrementStock_AllOrNothing(t *testing.T) {
	c := setupCatalog()
	ctx := context.Background()

	err := c.DecrementStock(ctx, []Adjustment{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 999},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// nothing moved, not even the line that had stock
	p1, _ := c.GetProduct(ctx, 1)
	p2, _ := c.GetProduct(ctx, 2)
	assert.Equal(t, 50, p1.Stock)
	assert.Equal(t, 10, p2.Stock)

	err = c.DecrementStock(ctx, []Adjustment{{ProductID: 404, Quantity: 1}})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryCatalog_RestoreStock(t *testing.T) {
	c := setupCatalog()
	ctx := context.Background()

	require.NoError(t, c.DecrementStock(ctx, []Adjustment{{ProductID: 1, Quantity: 5}}))
	require.NoError(t, c.RestoreStock(ctx, []Adjustment{{ProductID: 1, Quantity: 5}}))

	p1, _ := c.GetProduct(ctx, 1)
	assert.Equal(t, 50, p1.Stock)
}
