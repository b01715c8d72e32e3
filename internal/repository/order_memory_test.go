package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder() *domain.Order {
	return &domain.Order{
		ID:     uuid.New().String(),
		Status: domain.OrderStatusPaymentConfirmed,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "X-Burger", Quantity: 2, UnitPrice: 18.90},
		},
		TotalAmount: 37.80,
	}
}

func TestMemoryOrderRepository_CreateAssignsSequentialNumbers(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	first := newOrder()
	second := newOrder()
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, int64(2), second.Number)
}

func TestMemoryOrderRepository_ConcurrentNumbersAreDistinct(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	numbers := make(chan int64, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := newOrder()
			if err := repo.Create(ctx, o); err == nil {
				numbers <- o.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)

	seen := make(map[int64]bool)
	count := 0
	for num := range numbers {
		assert.False(t, seen[num], "number %d assigned twice", num)
		seen[num] = true
		count++
	}
	assert.Equal(t, n, count)
}

func TestMemoryOrderRepository_GetAndUpdate(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	order := newOrder()
	require.NoError(t, repo.Create(ctx, order))

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Number, got.Number)

	got.Status = domain.OrderStatusInPreparation
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusInPreparation, updated.Status)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	err = repo.Update(ctx, &domain.Order{ID: "ghost"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryOrderRepository_ListNewestFirst(t *testing.T) {
	repo := NewMemoryOrderRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newOrder()))
	}

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(3), orders[0].Number)
	assert.Equal(t, int64(1), orders[2].Number)
}
