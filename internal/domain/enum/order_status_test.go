package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusOpen.CanTransitionTo(OrderStatusPaid))
	assert.True(t, OrderStatusOpen.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusOpen.CanTransitionTo(OrderStatusRefunded), "refunds require payment first")

	assert.True(t, OrderStatusPaid.CanTransitionTo(OrderStatusRefunded))
	assert.False(t, OrderStatusPaid.CanTransitionTo(OrderStatusOpen))
	assert.False(t, OrderStatusPaid.CanTransitionTo(OrderStatusCancelled))
}

func TestOrderStatusTerminalStates(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusCancelled, OrderStatusRefunded, OrderStatusClosed} {
		for _, next := range []OrderStatus{OrderStatusOpen, OrderStatusPaid, OrderStatusCancelled, OrderStatusRefunded} {
			assert.False(t, terminal.CanTransitionTo(next), "%s -> %s must be rejected", terminal, next)
		}
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, OrderStatusOpen.IsValid())
	assert.True(t, OrderStatusClosed.IsValid(), "legacy value still parses")
	assert.False(t, OrderStatus("SHIPPED").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
