package handlers

import (
	"fmt"

	"storefront/internal/models"
)

type invalidTransitionError struct {
	From string
	To   string
}

func (e invalidTransitionError) Error() string {
	return fmt.Sprintf("order status cannot change from %s to %s", e.From, e.To)
}

func isValidOrderStatus(status string) bool {
	switch status {
	case models.OrderStatusProcessing, models.OrderStatusShipped, models.OrderStatusDelivered:
		return true
	}
	return false
}

// checkTransition validates an order status change. Delivered is terminal:
// once reached, no further transition is accepted.
func checkTransition(current, next string) error {
	if !isValidOrderStatus(next) {
		return fmt.Errorf("unknown order status: %s", next)
	}
	if current == models.OrderStatusDelivered {
		return invalidTransitionError{From: current, To: next}
	}
	return nil
}
