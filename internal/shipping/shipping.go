package shipping

import (
	"github.com/oskarlind/storefront-backend/pkg/config"
	"github.com/oskarlind/storefront-backend/pkg/enums"
)

// Rates is the standard-delivery fee schedule. Amounts are whole currency
// units, same as product prices.
type Rates struct {
	StandardFee        int64
	StandardFeeReduced int64
	ReducedThreshold   int64
}

// DefaultRates matches the store's published fee schedule.
func DefaultRates() Rates {
	return Rates{
		StandardFee:        79,
		StandardFeeReduced: 49,
		ReducedThreshold:   500,
	}
}

// RatesFromConfig builds the schedule from the loaded configuration.
func RatesFromConfig(cfg config.ShippingConfig) Rates {
	return Rates{
		StandardFee:        cfg.StandardFee,
		StandardFeeReduced: cfg.StandardFeeReduced,
		ReducedThreshold:   cfg.ReducedThreshold,
	}
}

// Compute returns the delivery cost for the given subtotal and mode.
// Pickup is always free. The calculation is pure and re-run on every
// subtotal change rather than cached.
func (r Rates) Compute(subtotal int64, mode enums.DeliveryMode) int64 {
	if mode == enums.DeliveryModePickup {
		return 0
	}
	if subtotal < r.ReducedThreshold {
		return r.StandardFee
	}
	return r.StandardFeeReduced
}
