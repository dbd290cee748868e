package enums

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusProcessing, OrderStatusShipped},
		{OrderStatusProcessing, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
	}
	for _, tt := range allowed {
		if !tt.from.CanTransition(tt.to) {
			t.Fatalf("expected %s -> %s to be allowed", tt.from, tt.to)
		}
	}

	denied := []struct{ from, to OrderStatus }{
		{OrderStatusProcessing, OrderStatusDelivered},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusCancelled, OrderStatusProcessing},
		{OrderStatusShipped, OrderStatusProcessing},
	}
	for _, tt := range denied {
		if tt.from.CanTransition(tt.to) {
			t.Fatalf("expected %s -> %s to be denied", tt.from, tt.to)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	for _, candidate := range validOrderStatuses {
		parsed, err := ParseOrderStatus(string(candidate))
		if err != nil || parsed != candidate {
			t.Fatalf("round trip failed for %s: %v", candidate, err)
		}
	}
	if _, err := ParseOrderStatus("refunded"); err == nil {
		t.Fatalf("expected unknown status to fail")
	}
}

func TestDeliveryMode(t *testing.T) {
	if !DeliveryModeStandard.RequiresAddress() {
		t.Fatalf("standard delivery requires an address")
	}
	if DeliveryModePickup.RequiresAddress() {
		t.Fatalf("pickup must not require an address")
	}
	if _, err := ParseDeliveryMode("drone"); err == nil {
		t.Fatalf("expected unknown mode to fail")
	}
	if mode, err := ParseDeliveryMode("pickup_location"); err != nil || mode != DeliveryModePickup {
		t.Fatalf("parse pickup failed: %v", err)
	}
}
