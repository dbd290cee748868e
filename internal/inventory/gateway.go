package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oskarlind/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
)

// ShortageDetail is attached to insufficient-stock errors so callers can
// tell the shopper what is actually available.
type ShortageDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Requested int       `json:"requested"`
	Available int       `json:"available"`
}

// Gateway arbitrates stock. Reads are advisory; the conditional decrement
// inside the order transaction is the only authoritative check.
type Gateway interface {
	GetStock(ctx context.Context, productID uuid.UUID) (int, error)
	GetStockBatch(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error)
	// DecrementStock subtracts qty from the product's stock only when
	// enough remains, in a single statement. It must run on the caller's
	// transaction handle so the decrement commits or rolls back with the
	// order.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error
	SetStock(ctx context.Context, productID uuid.UUID, count int) error
}

type gateway struct {
	db *gorm.DB
}

// NewGateway builds an inventory gateway bound to the provided DB.
func NewGateway(db *gorm.DB) (Gateway, error) {
	if db == nil {
		return nil, fmt.Errorf("inventory db handle required")
	}
	return &gateway{db: db}, nil
}

func (g *gateway) GetStock(ctx context.Context, productID uuid.UUID) (int, error) {
	var item models.InventoryItem
	err := g.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeProductGone, "no stock record for product").
				WithDetails(ShortageDetail{ProductID: productID})
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock")
	}
	return item.StockCount, nil
}

func (g *gateway) GetStockBatch(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(productIDs))
	if len(productIDs) == 0 {
		return counts, nil
	}

	var items []models.InventoryItem
	err := g.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read stock batch")
	}

	for _, item := range items {
		counts[item.ProductID] = item.StockCount
	}
	return counts, nil
}

func (g *gateway) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) error {
	if tx == nil {
		return fmt.Errorf("decrement requires a transaction handle")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "decrement quantity must be positive")
	}

	res := tx.WithContext(ctx).
		Model(&models.InventoryItem{}).
		Where("product_id = ? AND stock_count >= ?", productID, qty).
		UpdateColumn("stock_count", gorm.Expr("stock_count - ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "decrement stock")
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// The guarded update matched nothing: either the stock row is gone or
	// the remaining count is short. Re-read on the same tx to tell the two
	// apart.
	var item models.InventoryItem
	err := tx.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeProductGone, "no stock record for product").
			WithDetails(ShortageDetail{ProductID: productID, Requested: qty})
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inspect stock after failed decrement")
	}
	return pkgerrors.New(pkgerrors.CodeInsufficientStock, "not enough stock for product").
		WithDetails(ShortageDetail{ProductID: productID, Requested: qty, Available: item.StockCount})
}

func (g *gateway) SetStock(ctx context.Context, productID uuid.UUID, count int) error {
	if count < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock count cannot be negative")
	}
	item := models.InventoryItem{ProductID: productID, StockCount: count}
	err := g.db.WithContext(ctx).Save(&item).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write stock")
	}
	return nil
}
