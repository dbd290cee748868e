package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	values map[string]string
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeRedis) CartKey(sessionID string) string {
	return "sf:cart:" + sessionID
}

func TestRedisStorageRoundTrip(t *testing.T) {
	storage := &RedisStorage{client: &fakeRedis{values: map[string]string{}}}
	ctx := context.Background()

	lines := []Line{
		{ProductID: uuid.New(), Name: "lamp", UnitPrice: 300, Quantity: 2},
		{ProductID: uuid.New(), Name: "chair", UnitPrice: 120, Quantity: 1},
	}
	require.NoError(t, storage.Save(ctx, "sess-1", lines))

	loaded, err := storage.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, lines, loaded)
}

func TestRedisStorageMissingKeyIsEmptyCart(t *testing.T) {
	storage := &RedisStorage{client: &fakeRedis{values: map[string]string{}}}
	loaded, err := storage.Load(context.Background(), "sess-unknown")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorageDelete(t *testing.T) {
	client := &fakeRedis{values: map[string]string{}}
	storage := &RedisStorage{client: client}
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "sess-1", []Line{{ProductID: uuid.New(), Quantity: 1}}))
	require.NoError(t, storage.Delete(ctx, "sess-1"))

	loaded, err := storage.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
