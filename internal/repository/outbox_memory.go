package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryOutboxRepository implements OutboxRepository with in-memory storage
type MemoryOutboxRepository struct {
	mu     sync.Mutex
	events []*OutboxEvent
	nextID int64
}

// NewMemoryOutboxRepository creates an empty in-memory outbox
func NewMemoryOutboxRepository() *MemoryOutboxRepository {
	return &MemoryOutboxRepository{}
}

// Append stores the event with a fresh id.
func (r *MemoryOutboxRepository) Append(_ context.Context, event *OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	event.ID = r.nextID
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	cp := *event
	r.events = append(r.events, &cp)
	return nil
}

// GetUnprocessedEvents returns up to limit events in append order.
func (r *MemoryOutboxRepository) GetUnprocessedEvents(_ context.Context, limit int) ([]*OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*OutboxEvent
	for _, e := range r.events {
		if e.Processed {
			continue
		}
		cp := *e
		out = append(out, &cp)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

// MarkEventAsProcessed flags the event so the poller never ships it twice.
func (r *MemoryOutboxRepository) MarkEventAsProcessed(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID == id {
			e.Processed = true
			return nil
		}
	}
	return nil
}
