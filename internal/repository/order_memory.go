package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
)

// MemoryOrderRepository implements OrderRepository with in-memory storage.
// Sequential numbers come from a counter guarded by the store mutex, so
// concurrent placements always receive distinct numbers.
type MemoryOrderRepository struct {
	mu         sync.RWMutex
	orders     map[string]*domain.Order
	lastNumber int64
}

// NewMemoryOrderRepository creates an empty in-memory order store
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

// Create assigns the next sequential number and stores the order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastNumber++
	order.Number = r.lastNumber

	cp := *order
	cp.Items = make([]domain.OrderItem, len(order.Items))
	copy(cp.Items, order.Items)
	r.orders[order.ID] = &cp
	return nil
}

// Delete removes an order row. Only the placement rollback path uses this;
// a cancelled order stays in the store as a status, never a deletion.
func (r *MemoryOrderRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.orders, id)
	return nil
}

// GetByID returns a copy of the order or ErrOrderNotFound.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	cp := *o
	cp.Items = make([]domain.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp, nil
}

// Update replaces a stored order.
func (r *MemoryOrderRepository) Update(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return ErrOrderNotFound
	}
	cp := *order
	cp.Items = make([]domain.OrderItem, len(order.Items))
	copy(cp.Items, order.Items)
	r.orders[order.ID] = &cp
	return nil
}

// List returns all orders, most recently created first.
func (r *MemoryOrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		cp := *o
		cp.Items = make([]domain.OrderItem, len(o.Items))
		copy(cp.Items, o.Items)
		orders = append(orders, &cp)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Number > orders[j].Number
	})
	return orders, nil
}
