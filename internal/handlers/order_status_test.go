package handlers

import (
	"errors"
	"testing"

	"storefront/internal/models"
)

func TestCheckTransitionAcceptsForwardMoves(t *testing.T) {
	cases := []struct{ from, to string }{
		{models.OrderStatusProcessing, models.OrderStatusShipped},
		{models.OrderStatusProcessing, models.OrderStatusDelivered},
		{models.OrderStatusShipped, models.OrderStatusDelivered},
	}

	for _, tc := range cases {
		if err := checkTransition(tc.from, tc.to); err != nil {
			t.Fatalf("expected %s -> %s to be accepted, got %v", tc.from, tc.to, err)
		}
	}
}

func TestCheckTransitionDeliveredIsTerminal(t *testing.T) {
	for _, next := range []string{
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
	} {
		err := checkTransition(models.OrderStatusDelivered, next)
		if err == nil {
			t.Fatalf("expected delivered -> %s to be rejected", next)
		}
		var transitionErr invalidTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("expected invalidTransitionError, got %T", err)
		}
	}
}

func TestCheckTransitionRejectsUnknownStatus(t *testing.T) {
	if err := checkTransition(models.OrderStatusProcessing, "cancelled"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}
