package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
)

// OrderService advances placed orders through the kitchen state machine and
// reverses inventory on cancellation.
type OrderService struct {
	orders  repository.OrderRepository
	catalog catalog.Catalog
	outbox  repository.OutboxRepository
	tx      repository.TxManager
}

func NewOrderService(orders repository.OrderRepository, cat catalog.Catalog, outbox repository.OutboxRepository, tx repository.TxManager) *OrderService {
	return &OrderService{
		orders:  orders,
		catalog: cat,
		outbox:  outbox,
		tx:      tx,
	}
}

// Get returns one order by id.
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

// List returns the kitchen-facing order listing, newest first.
func (s *OrderService) List(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// StartPreparing moves a paid order onto the kitchen line. Re-entry from
// IN_PREPARATION is refused explicitly rather than treated as a no-op.
func (s *OrderService) StartPreparing(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusInPreparation {
		return nil, ErrAlreadyPreparing
	}
	return s.transition(ctx, order, domain.OrderStatusInPreparation)
}

// MarkReady flags the order ready for pickup.
func (s *OrderService) MarkReady(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, domain.OrderStatusReadyForPickup)
}

// ConfirmPickup closes the order once the customer collects it.
func (s *OrderService) ConfirmPickup(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, domain.OrderStatusPickedUp)
}

// Cancel terminates a non-picked-up order and puts every line's quantity
// back on the shelf, exactly once.
func (s *OrderService) Cancel(ctx context.Context, orderID string) (*domain.Order, error) {
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.TransitionTo(domain.OrderStatusCanceled); err != nil {
			return err
		}

		adjustments := make([]catalog.Adjustment, len(order.Items))
		for i, item := range order.Items {
			adjustments[i] = catalog.Adjustment{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		if err := s.catalog.RestoreStock(ctx, adjustments); err != nil {
			return err
		}

		if err := s.orders.Update(ctx, order); err != nil {
			// take the restored stock back so cancellation stays all-or-nothing
			if errComp := s.catalog.DecrementStock(ctx, adjustments); errComp != nil {
				log.Printf("failed to re-decrement stock after cancel rollback: %v", errComp)
			}
			return err
		}

		s.appendStatusEvent(ctx, order)
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrderService) transition(ctx context.Context, order *domain.Order, to domain.OrderStatus) (*domain.Order, error) {
	if err := order.TransitionTo(to); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.appendStatusEvent(ctx, order)
	return order, nil
}

func (s *OrderService) appendStatusEvent(ctx context.Context, order *domain.Order) {
	payload := map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.Number,
		"status":       order.Status,
		"occurred_at":  time.Now(),
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal order status payload: %v", err)
		return
	}

	errAppend := s.outbox.Append(ctx, &repository.OutboxEvent{
		AggregateID: order.ID,
		EventType:   EventOrderStatusChanged,
		Payload:     payloadJSON,
	})
	if errAppend != nil {
		log.Printf("failed to append outbox event for order %s: %v", order.ID, errAppend)
	}
}
