package cache

import (
	"context"
	"errors"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
)

// ErrCacheMiss signals the cart is not cached; callers fall through to the store.
var ErrCacheMiss = errors.New("cart not found in cache")

// CartCache is the read-side cache in front of the cart store.
type CartCache interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Set(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
