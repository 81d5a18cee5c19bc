package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	// Transitions autorisées
	assert.True(t, CanTransitionOrder(OrderStatusPending, OrderStatusPaid))
	assert.True(t, CanTransitionOrder(OrderStatusPending, OrderStatusFailed))
	assert.True(t, CanTransitionOrder(OrderStatusPaid, OrderStatusRefunded))

	// Tout le reste est interdit : le statut est monotone
	assert.False(t, CanTransitionOrder(OrderStatusPaid, OrderStatusPending))
	assert.False(t, CanTransitionOrder(OrderStatusPaid, OrderStatusFailed))
	assert.False(t, CanTransitionOrder(OrderStatusFailed, OrderStatusPaid))
	assert.False(t, CanTransitionOrder(OrderStatusFailed, OrderStatusRefunded))
	assert.False(t, CanTransitionOrder(OrderStatusRefunded, OrderStatusPaid))
	assert.False(t, CanTransitionOrder(OrderStatusPending, OrderStatusRefunded))
	assert.False(t, CanTransitionOrder(OrderStatusPending, OrderStatusPending))
}
