package checkout

import (
	"github.com/google/uuid"

	"github.com/oskarlind/storefront-backend/internal/cart"
	"github.com/oskarlind/storefront-backend/pkg/db/models"
	"github.com/oskarlind/storefront-backend/pkg/enums"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

const maxIdempotencyKeyLen = 128

func validateInput(customerID uuid.UUID, sessionID string, input PlaceOrderInput) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id is required")
	}
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.IdempotencyKey == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "idempotency key is required")
	}
	if len(input.IdempotencyKey) > maxIdempotencyKeyLen {
		return pkgerrors.New(pkgerrors.CodeValidation, "idempotency key too long")
	}
	if !input.DeliveryMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery mode")
	}
	return nil
}

// resolveAddress picks where the order ships: the shopper's address for
// standard delivery, the fixed pickup point otherwise.
func (s *service) resolveAddress(input PlaceOrderInput) (types.Address, error) {
	if !input.DeliveryMode.RequiresAddress() {
		return s.pickup, nil
	}
	if input.Address == nil {
		return types.Address{}, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if err := input.Address.Validate(); err != nil {
		return types.Address{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery address")
	}
	return *input.Address, nil
}

func buildOrder(customerID uuid.UUID, input PlaceOrderInput, address types.Address, current cart.Cart, subtotal, shippingCost int64) *models.Order {
	items := make([]models.OrderLineItem, 0, len(current.Lines))
	for _, line := range current.Lines {
		items = append(items, models.OrderLineItem{
			ID:        uuid.New(),
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return &models.Order{
		ID:             uuid.New(),
		CustomerID:     customerID,
		IdempotencyKey: input.IdempotencyKey,
		Status:         enums.OrderStatusProcessing,
		DeliveryMode:   input.DeliveryMode,
		Address:        address,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		Total:          subtotal + shippingCost,
		Items:          items,
	}
}
