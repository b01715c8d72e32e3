package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmedCart(t *testing.T) *Cart {
	t.Helper()
	cart := NewCart("s1")
	_, err := cart.AddItem(burger, 2, "sem cebola")
	require.NoError(t, err)
	_, err = cart.AddItem(fries, 1, "")
	require.NoError(t, err)
	require.NoError(t, cart.Confirm())
	return cart
}

func TestNewOrderFromCart(t *testing.T) {
	cart := confirmedCart(t)

	order := NewOrderFromCart(cart, "customer-7")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, OrderStatusPaymentConfirmed, order.Status)
	assert.Equal(t, "customer-7", order.CustomerID)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "X-Burger", order.Items[0].ProductName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 18.90, order.Items[0].UnitPrice, 0.001)
	assert.Equal(t, "sem cebola", order.Items[0].Note)
	assert.InDelta(t, cart.Total, order.TotalAmount, 0.001)
	// number is assigned by the store, not here
	assert.Equal(t, int64(0), order.Number)
}

func TestOrder_ForwardProgression(t *testing.T) {
	cart := confirmedCart(t)
	order := NewOrderFromCart(cart, "")

	require.NoError(t, order.TransitionTo(OrderStatusInPreparation))
	require.NoError(t, order.TransitionTo(OrderStatusReadyForPickup))
	require.NoError(t, order.TransitionTo(OrderStatusPickedUp))
	assert.Equal(t, OrderStatusPickedUp, order.Status)
}

func TestOrder_SkippingStatesRefused(t *testing.T) {
	cart := confirmedCart(t)
	order := NewOrderFromCart(cart, "")
	require.NoError(t, order.TransitionTo(OrderStatusInPreparation))

	err := order.TransitionTo(OrderStatusPickedUp)
	require.Error(t, err)

	var transition *InvalidTransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, OrderStatusInPreparation, transition.From)
	assert.Equal(t, OrderStatusPickedUp, transition.To)
	assert.Equal(t, OrderStatusInPreparation, order.Status)
}

func TestOrder_CancelFromAnyNonTerminal(t *testing.T) {
	for _, from := range []OrderStatus{
		OrderStatusPaymentPending,
		OrderStatusPaymentConfirmed,
		OrderStatusInPreparation,
		OrderStatusReadyForPickup,
	} {
		assert.True(t, CanTransitionTo(from, OrderStatusCanceled), "cancel from %s", from)
	}
}

func TestOrder_PickedUpCannotBeCanceled(t *testing.T) {
	cart := confirmedCart(t)
	order := NewOrderFromCart(cart, "")
	require.NoError(t, order.TransitionTo(OrderStatusInPreparation))
	require.NoError(t, order.TransitionTo(OrderStatusReadyForPickup))
	require.NoError(t, order.TransitionTo(OrderStatusPickedUp))

	err := order.TransitionTo(OrderStatusCanceled)
	require.Error(t, err)
	assert.Equal(t, OrderStatusPickedUp, order.Status)
}

func TestOrder_CanceledIsTerminal(t *testing.T) {
	cart := confirmedCart(t)
	order := NewOrderFromCart(cart, "")
	require.NoError(t, order.TransitionTo(OrderStatusCanceled))

	for _, to := range []OrderStatus{
		OrderStatusInPreparation,
		OrderStatusReadyForPickup,
		OrderStatusPickedUp,
		OrderStatusCanceled,
	} {
		assert.Error(t, order.TransitionTo(to), "transition to %s", to)
	}
}
