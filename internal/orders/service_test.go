package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oskarlind/storefront-backend/pkg/enums"
	pkgerrors "github.com/oskarlind/storefront-backend/pkg/errors"
	"github.com/oskarlind/storefront-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, Repository) {
	t.Helper()
	db := newTestDB(t)
	repo := NewRepository(db)
	logg := logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard})
	svc, err := NewService(repo, logg)
	require.NoError(t, err)
	return svc, repo
}

func TestGetOrderScopedToCustomer(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	customerID := uuid.New()
	order, err := repo.Create(ctx, buildOrder(customerID))
	require.NoError(t, err)

	found, err := svc.GetOrder(ctx, customerID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	// A different customer gets not-found, not forbidden, so order ids
	// leak nothing.
	_, err = svc.GetOrder(ctx, uuid.New(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestUpdateStatusFollowsTransitions(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	order, err := repo.Create(ctx, buildOrder(uuid.New()))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, updated.Status)

	updated, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusDelivered, updated.Status)
}

func TestUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	order, err := repo.Create(ctx, buildOrder(uuid.New()))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusDelivered)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// Terminal statuses never move again.
	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusCancelled)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, order.ID, enums.OrderStatusShipped)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateStatus(context.Background(), uuid.New(), enums.OrderStatusShipped)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
