package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_idempotency_key"}

	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(pgErr, "idx_orders_idempotency_key"))
	assert.False(t, IsUniqueViolation(pgErr, "other_constraint"))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))

	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: orders.idempotency_key"), "idx_orders_idempotency_key"))
	assert.True(t, IsUniqueViolation(errors.New(`duplicate key value violates unique constraint "idx_orders_idempotency_key"`), "idx_orders_idempotency_key"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
