package repository

import (
	"context"
	"errors"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
)

// Common errors returned by the stores
var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrDuplicateNumber = errors.New("order number already taken")
)

// CartRepository persists session-keyed carts. A cart idle past the store's
// TTL reads as absent.
type CartRepository interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Upsert(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// PaymentRepository persists payments keyed by payment id and by session id.
type PaymentRepository interface {
	Save(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	// GetBySession returns the most recent payment for the session
	GetBySession(ctx context.Context, sessionID string) (*domain.Payment, error)
}

// OrderRepository persists orders. Create assigns the next sequential
// customer-facing number; uniqueness under concurrent placement is the
// store's responsibility.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]*domain.Order, error)
}

// OutboxEvent is a pending domain event awaiting publication.
type OutboxEvent struct {
	ID          int64
	AggregateID string
	EventType   string
	Payload     []byte
	CreatedAt   time.Time
	Processed   bool
}

// OutboxRepository buffers events written inside placement/transition
// transactions until the poller ships them to the broker.
type OutboxRepository interface {
	Append(ctx context.Context, event *OutboxEvent) error
	GetUnprocessedEvents(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkEventAsProcessed(ctx context.Context, id int64) error
}

// TxManager brackets a multi-store mutation so it commits or rolls back as a
// unit. The in-memory implementation serializes critical sections; a SQL
// implementation maps this onto a database transaction.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
