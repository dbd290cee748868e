package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/oskarlind/storefront-backend/pkg/enums"
	"github.com/oskarlind/storefront-backend/pkg/types"
)

// Order is the immutable snapshot written at checkout commit. Catalog
// edits after commit never alter it; only Status changes afterwards, and
// only through the staff console path.
type Order struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID     uuid.UUID          `gorm:"column:customer_id;type:uuid;not null"`
	IdempotencyKey string             `gorm:"column:idempotency_key;not null;uniqueIndex:idx_orders_idempotency_key"`
	Status         enums.OrderStatus  `gorm:"column:status;not null;default:'processing'"`
	DeliveryMode   enums.DeliveryMode `gorm:"column:delivery_mode;not null"`
	Address        types.Address      `gorm:"column:address;type:jsonb;serializer:json"`
	Subtotal       int64              `gorm:"column:subtotal;not null"`
	ShippingCost   int64              `gorm:"column:shipping_cost;not null"`
	Total          int64              `gorm:"column:total;not null"`
	Items          []OrderLineItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
