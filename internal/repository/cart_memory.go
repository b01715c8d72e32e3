package repository

import (
	"context"
	"sync"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
)

const (
	// DefaultCartTTL is how long an idle cart stays reachable
	DefaultCartTTL = 4 * time.Hour

	// CleanupInterval is how often the background sweep runs
	CleanupInterval = 5 * time.Minute
)

// MemoryCartRepository implements CartRepository with in-memory storage.
// Carts idle past the TTL read as absent and a background sweep eventually
// drops them, so an abandoned session cannot pin memory forever.
type MemoryCartRepository struct {
	mu    sync.RWMutex
	carts map[string]*domain.Cart
	ttl   time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewMemoryCartRepository creates the store and starts its sweep goroutine.
func NewMemoryCartRepository(ttl time.Duration) *MemoryCartRepository {
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	r := &MemoryCartRepository{
		carts:       make(map[string]*domain.Cart),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

func (r *MemoryCartRepository) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expireCarts()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *MemoryCartRepository) expireCarts() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-r.ttl)
	for sessionID, cart := range r.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(r.carts, sessionID)
		}
	}
}

// Get returns a copy of the cart, or ErrCartNotFound for missing and stale
// carts alike.
func (r *MemoryCartRepository) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, exists := r.carts[sessionID]
	if !exists || time.Since(cart.UpdatedAt) > r.ttl {
		return nil, ErrCartNotFound
	}
	cp := *cart
	cp.Items = make([]domain.CartItem, len(cart.Items))
	copy(cp.Items, cart.Items)
	return &cp, nil
}

// Upsert stores the cart under its session id.
func (r *MemoryCartRepository) Upsert(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *cart
	cp.Items = make([]domain.CartItem, len(cart.Items))
	copy(cp.Items, cart.Items)
	r.carts[cart.SessionID] = &cp
	return nil
}

// Delete removes the session's cart. Deleting an absent cart is not an error;
// placement must stay idempotent when retried after the cart is gone.
func (r *MemoryCartRepository) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, sessionID)
	return nil
}

// Close stops the background sweep and waits for it to finish
func (r *MemoryCartRepository) Close() error {
	close(r.stopCleanup)
	r.wg.Wait()
	return nil
}
