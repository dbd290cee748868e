package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oskarlind/storefront-backend/pkg/db/models"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:inventory_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.InventoryItem{}))
	return db
}

func seedStock(t *testing.T, db *gorm.DB, count int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	require.NoError(t, db.Create(&models.InventoryItem{ProductID: id, StockCount: count}).Error)
	return id
}

func stockCount(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var item models.InventoryItem
	require.NoError(t, db.Where("product_id = ?", id).First(&item).Error)
	return item.StockCount
}

func TestDecrementStockHappyPath(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	id := seedStock(t, db, 5)

	err = db.Transaction(func(tx *gorm.DB) error {
		return gw.DecrementStock(context.Background(), tx, id, 3)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stockCount(t, db, id))
}

func TestDecrementStockExactRemainder(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	id := seedStock(t, db, 3)

	err = db.Transaction(func(tx *gorm.DB) error {
		return gw.DecrementStock(context.Background(), tx, id, 3)
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stockCount(t, db, id))
}

func TestDecrementStockInsufficient(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	id := seedStock(t, db, 3)

	err = db.Transaction(func(tx *gorm.DB) error {
		return gw.DecrementStock(context.Background(), tx, id, 5)
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())

	detail, ok := typed.Details().(ShortageDetail)
	require.True(t, ok)
	assert.Equal(t, 5, detail.Requested)
	assert.Equal(t, 3, detail.Available)

	// The guarded update must leave the count untouched.
	assert.Equal(t, 3, stockCount(t, db, id))
}

func TestDecrementStockMissingRow(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	err = db.Transaction(func(tx *gorm.DB) error {
		return gw.DecrementStock(context.Background(), tx, uuid.New(), 1)
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeProductGone, typed.Code())
}

func TestDecrementStockRejectsNonPositiveQty(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	id := seedStock(t, db, 3)

	err = db.Transaction(func(tx *gorm.DB) error {
		return gw.DecrementStock(context.Background(), tx, id, 0)
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetStockBatch(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	a := seedStock(t, db, 2)
	b := seedStock(t, db, 7)

	counts, err := gw.GetStockBatch(context.Background(), []uuid.UUID{a, b, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 2, counts[a])
	assert.Equal(t, 7, counts[b])
	assert.Len(t, counts, 2)
}

func TestGetStockMissingProduct(t *testing.T) {
	db := newTestDB(t)
	gw, err := NewGateway(db)
	require.NoError(t, err)

	_, err = gw.GetStock(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeProductGone, typed.Code())
}
