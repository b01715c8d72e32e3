package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/cache"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CartService runs the session-cart operations: catalog-checked adds,
// removals, confirmation and the read-side view.
type CartService struct {
	carts   repository.CartRepository
	cache   cache.CartCache
	catalog catalog.Catalog
	sfg     singleflight.Group // Prevents cache stampede
}

// NewCartService wires the cart flow. The cache may be nil; every operation
// degrades to the repository alone.
func NewCartService(carts repository.CartRepository, cartCache cache.CartCache, cat catalog.Catalog) *CartService {
	return &CartService{
		carts:   carts,
		cache:   cartCache,
		catalog: cat,
	}
}

// AddItem validates the product against the catalog, merges the line into
// the session cart (created lazily on first add) and returns the affected
// line plus the refreshed subtotal.
func (s *CartService) AddItem(ctx context.Context, sessionID string, productID int64, quantity int, note string) (*domain.CartItem, float64, error) {
	if quantity <= 0 {
		return nil, 0, domain.ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, 0, err
	}
	if !product.Purchasable || product.Stock <= 0 {
		return nil, 0, ErrProductUnavailable
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if errors.Is(err, repository.ErrCartNotFound) {
		cart = domain.NewCart(sessionID)
	} else if err != nil {
		return nil, 0, err
	}

	item, err := cart.AddItem(domain.ProductRef{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
	}, quantity, note)
	if err != nil {
		return nil, 0, err
	}

	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, 0, err
	}

	s.invalidateCache(sessionID)
	return item, cart.Subtotal, nil
}

// RemoveItem deletes the line entirely and returns the refreshed subtotal.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string) (float64, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	if err := cart.RemoveItem(itemID); err != nil {
		return 0, err
	}

	if err := s.carts.Upsert(ctx, cart); err != nil {
		return 0, err
	}

	s.invalidateCache(sessionID)
	return cart.Subtotal, nil
}

// Confirm marks the cart ready for checkout and returns its snapshot.
func (s *CartService) Confirm(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := cart.Confirm(); err != nil {
		return nil, err
	}

	if err := s.carts.Upsert(ctx, cart); err != nil {
		return nil, err
	}

	s.invalidateCache(sessionID)
	return cart, nil
}

// View is the side-effect-free read. A session with no cart gets an empty
// cart shape, never an error.
func (s *CartService) View(ctx context.Context, sessionID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {
		if s.cache != nil {
			cart, errCache := s.cache.Get(ctx, sessionID)
			if errCache == nil {
				return cart, nil // cart is in cache
			}
			if !errors.Is(errCache, cache.ErrCacheMiss) {
				log.Printf("cache get error: %v", errCache) // log cache error but continue
			}
		}

		cart, errGet := s.carts.Get(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, repository.ErrCartNotFound) {
			return domain.NewCart(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		if s.cache != nil {
			go func() {
				errSet := s.cache.Set(context.Background(), sessionID, cart)
				if errSet != nil {
					log.Printf("cache set error: %v", errSet)
				}
			}()
		}

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

func (s *CartService) invalidateCache(sessionID string) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}
