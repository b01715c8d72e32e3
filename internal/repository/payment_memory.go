package repository

import (
	"context"
	"sync"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
)

// MemoryPaymentRepository implements PaymentRepository with in-memory
// storage, indexed by payment id and by session id.
type MemoryPaymentRepository struct {
	mu        sync.RWMutex
	byID      map[string]*domain.Payment
	bySession map[string]string // sessionID -> latest payment id
}

// NewMemoryPaymentRepository creates an empty in-memory payment store
func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		byID:      make(map[string]*domain.Payment),
		bySession: make(map[string]string),
	}
}

// Save stores or replaces the payment and points the session index at it.
func (r *MemoryPaymentRepository) Save(_ context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *payment
	r.byID[payment.ID] = &cp
	r.bySession[payment.SessionID] = payment.ID
	return nil
}

// GetByID returns a copy of the payment or ErrPaymentNotFound.
func (r *MemoryPaymentRepository) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byID[id]
	if !exists {
		return nil, ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

// GetBySession returns the most recent payment for the session.
func (r *MemoryPaymentRepository) GetBySession(_ context.Context, sessionID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.bySession[sessionID]
	if !exists {
		return nil, ErrPaymentNotFound
	}
	cp := *r.byID[id]
	return &cp, nil
}
