package enum

// OrderStatus represents the lifecycle status of an order. Statuses are
// stored and serialized as their uppercase string form.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "OPEN"
	OrderStatusClosed    OrderStatus = "CLOSED" // legacy wire value, accepted but never produced
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
	OrderStatusRefunded  OrderStatus = "REFUNDED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOpen:      {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusRefunded},
	OrderStatusClosed:    {},
	OrderStatusCancelled: {},
	OrderStatusRefunded:  {},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine allows moving from s to
// next. Terminal statuses (CANCELLED, REFUNDED, CLOSED) allow no transitions.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
