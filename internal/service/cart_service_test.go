package service

import (
	"context"
	"testing"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCartService(t *testing.T) (*CartService, *catalog.MemoryCatalog) {
	t.Helper()

	cat := catalog.NewMemoryCatalog()
	cat.SetProduct(catalog.Product{ID: 1, Name: "X-Burger", Category: "Lanche", Price: 18.90, Stock: 50, Purchasable: true})
	cat.SetProduct(catalog.Product{ID: 2, Name: "Milkshake", Category: "Sobremesa", Price: 12.00, Stock: 0, Purchasable: true})
	cat.SetProduct(catalog.Product{ID: 4, Name: "Combo Antigo", Category: "Lanche", Price: 25.00, Stock: 10, Purchasable: false})

	carts := repository.NewMemoryCartRepository(time.Hour)
	t.Cleanup(func() { carts.Close() })

	return NewCartService(carts, nil, cat), cat
}

func TestCartService_AddItemCreatesCartLazily(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	item, subtotal, err := svc.AddItem(ctx, "s1", 1, 2, "sem cebola")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "X-Burger", item.Product.Name)
	assert.Equal(t, "sem cebola", item.Note)
	assert.InDelta(t, 37.80, subtotal, 0.001)
}

func TestCartService_AddItemMergesSameProduct(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	first, _, err := svc.AddItem(ctx, "s1", 1, 1, "")
	require.NoError(t, err)

	second, subtotal, err := svc.AddItem(ctx, "s1", 1, 2, "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)
	assert.InDelta(t, 56.70, subtotal, 0.001)

	cart, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartService_AddItemValidation(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "s1", 1, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, _, err = svc.AddItem(ctx, "s1", 999, 1, "")
	assert.ErrorIs(t, err, catalog.ErrProductNotFound)

	// out of stock
	_, _, err = svc.AddItem(ctx, "s1", 2, 1, "")
	assert.ErrorIs(t, err, ErrProductUnavailable)

	// delisted
	_, _, err = svc.AddItem(ctx, "s1", 4, 1, "")
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestCartService_AddItemCapturesPriceAtAddTime(t *testing.T) {
	svc, cat := setupCartService(t)
	ctx := context.Background()

	_, _, err := svc.AddItem(ctx, "s1", 1, 1, "")
	require.NoError(t, err)

	cat.SetProduct(catalog.Product{ID: 1, Name: "X-Burger", Category: "Lanche", Price: 99.00, Stock: 50, Purchasable: true})

	cart, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, 18.90, cart.Items[0].Product.Price, 0.001)
	assert.InDelta(t, 18.90, cart.Subtotal, 0.001)
}

func TestCartService_RemoveItem(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	item, _, err := svc.AddItem(ctx, "s1", 1, 2, "")
	require.NoError(t, err)

	subtotal, err := svc.RemoveItem(ctx, "s1", item.ID)
	require.NoError(t, err)
	assert.InDelta(t, 0, subtotal, 0.001)

	_, err = svc.RemoveItem(ctx, "s1", item.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.RemoveItem(ctx, "ghost", item.ID)
	assert.ErrorIs(t, err, repository.ErrCartNotFound)
}

func TestCartService_Confirm(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	_, err := svc.Confirm(ctx, "ghost")
	assert.ErrorIs(t, err, repository.ErrCartNotFound)

	_, _, err = svc.AddItem(ctx, "s1", 1, 2, "")
	require.NoError(t, err)

	cart, err := svc.Confirm(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, cart.Confirmed)
	assert.InDelta(t, 37.80, cart.Total, 0.001)

	// confirming again keeps the same snapshot
	again, err := svc.Confirm(ctx, "s1")
	require.NoError(t, err)
	assert.InDelta(t, cart.Total, again.Total, 0.001)
}

func TestCartService_ConfirmEmptyCart(t *testing.T) {
	svc, _ := setupCartService(t)
	ctx := context.Background()

	item, _, err := svc.AddItem(ctx, "s1", 1, 1, "")
	require.NoError(t, err)
	_, err = svc.RemoveItem(ctx, "s1", item.ID)
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCartService_ViewUnknownSessionIsEmptyCart(t *testing.T) {
	svc, _ := setupCartService(t)

	cart, err := svc.View(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Equal(t, "never-seen", cart.SessionID)
	assert.Empty(t, cart.Items)
	assert.InDelta(t, 0, cart.Total, 0.001)
}
