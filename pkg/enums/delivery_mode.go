package enums

import "fmt"

// DeliveryMode selects how an order reaches the customer.
type DeliveryMode string

const (
	DeliveryModeStandard DeliveryMode = "standard_delivery"
	DeliveryModePickup   DeliveryMode = "pickup_location"
)

var validDeliveryModes = []DeliveryMode{
	DeliveryModeStandard,
	DeliveryModePickup,
}

// String implements fmt.Stringer.
func (d DeliveryMode) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DeliveryMode.
func (d DeliveryMode) IsValid() bool {
	for _, candidate := range validDeliveryModes {
		if candidate == d {
			return true
		}
	}
	return false
}

// RequiresAddress reports whether the mode needs a customer address.
func (d DeliveryMode) RequiresAddress() bool {
	return d == DeliveryModeStandard
}

// ParseDeliveryMode converts raw input into a DeliveryMode.
func ParseDeliveryMode(value string) (DeliveryMode, error) {
	for _, candidate := range validDeliveryModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid delivery mode %q", value)
}
