package repository

import (
	"context"
	"sync"
)

// MemoryTxManager serializes critical sections so a placement's
// load-check-mutate cycle cannot interleave with another. The callback is
// responsible for its own compensation on failure; the manager only
// guarantees mutual exclusion.
type MemoryTxManager struct {
	mu sync.Mutex
}

// NewMemoryTxManager creates a tx manager backed by a single mutex
func NewMemoryTxManager() *MemoryTxManager {
	return &MemoryTxManager{}
}

func (m *MemoryTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}
