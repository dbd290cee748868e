package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/oskarlind/storefront-backend/pkg/db/models"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

// OrderView is the API shape of a placed order.
type OrderView struct {
	ID           uuid.UUID      `json:"id"`
	Status       string         `json:"status"`
	DeliveryMode string         `json:"delivery_mode"`
	Address      types.Address  `json:"address"`
	Subtotal     int64          `json:"subtotal"`
	ShippingCost int64          `json:"shipping_cost"`
	Total        int64          `json:"total"`
	Items        []LineItemView `json:"items"`
	CreatedAt    time.Time      `json:"created_at"`
}

// LineItemView is the API shape of an order line.
type LineItemView struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
}

// ToView maps a persisted order into its API shape.
func ToView(order *models.Order) OrderView {
	items := make([]LineItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, LineItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return OrderView{
		ID:           order.ID,
		Status:       order.Status.String(),
		DeliveryMode: order.DeliveryMode.String(),
		Address:      order.Address,
		Subtotal:     order.Subtotal,
		ShippingCost: order.ShippingCost,
		Total:        order.Total,
		Items:        items,
		CreatedAt:    order.CreatedAt,
	}
}
