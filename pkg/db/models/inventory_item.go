package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is the authoritative per-product stock count. StockCount
// never goes below zero; the decrement path enforces that inside the
// order transaction.
type InventoryItem struct {
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	StockCount int       `gorm:"column:stock_count;not null;default:0"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
