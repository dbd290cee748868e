package shipping

import (
	"testing"

	"github.com/oskarlind/storefront-backend/pkg/config"
	"github.com/oskarlind/storefront-backend/pkg/enums"
	"github.com/stretchr/testify/assert"
)

func TestComputeStandardDelivery(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{name: "zero subtotal", subtotal: 0, want: 79},
		{name: "just below threshold", subtotal: 499, want: 79},
		{name: "at threshold", subtotal: 500, want: 49},
		{name: "above threshold", subtotal: 12000, want: 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rates.Compute(tt.subtotal, enums.DeliveryModeStandard))
		})
	}
}

func TestComputePickupIsAlwaysFree(t *testing.T) {
	rates := DefaultRates()
	for _, subtotal := range []int64{0, 1, 499, 500, 99999} {
		assert.Zero(t, rates.Compute(subtotal, enums.DeliveryModePickup))
	}
}

func TestRatesFromConfig(t *testing.T) {
	rates := RatesFromConfig(config.ShippingConfig{
		StandardFee:        100,
		StandardFeeReduced: 50,
		ReducedThreshold:   1000,
	})
	assert.Equal(t, int64(100), rates.Compute(999, enums.DeliveryModeStandard))
	assert.Equal(t, int64(50), rates.Compute(1000, enums.DeliveryModeStandard))
}
