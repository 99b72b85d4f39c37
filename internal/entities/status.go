package entities

import "fmt"

// OrderStatus is the closed lifecycle set. Orders start as pending and
// only move along the transition table below.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// transitions holds every allowed (from, to) pair. Terminal states
// (delivered, cancelled) have no outgoing transitions; same-state
// no-ops are not allowed.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

type InvalidTransitionError struct {
	From OrderStatus
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %q to %q", e.From, e.To)
}

// ParseOrderStatus maps a raw string to a canonical status.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CheckTransition reports whether an order may move from its current
// status to the requested one. The store performs no transition logic,
// callers must run this before applying a status.
func CheckTransition(from OrderStatus, requested string) error {
	to, ok := ParseOrderStatus(requested)
	if !ok {
		return &InvalidTransitionError{From: from, To: requested}
	}
	for _, allowed := range transitions[from] {
		if to == allowed {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: requested}
}
