package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/oskarlind/storefront-backend/pkg/redis"
)

// cartTTL bounds how long an abandoned cart survives in redis.
const cartTTL = 30 * 24 * time.Hour

type redisCartClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStorage persists serialized carts under a session-scoped key so a
// session keeps its cart across instances and restarts.
type RedisStorage struct {
	client redisCartClient
}

// NewRedisStorage wraps the shared redis client as cart storage.
func NewRedisStorage(client *pkgredis.Client) (*RedisStorage, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStorage{client: client}, nil
}

func (r *RedisStorage) Load(ctx context.Context, sessionID string) ([]Line, error) {
	payload, err := r.client.Get(ctx, r.client.CartKey(sessionID))
	if err != nil {
		if pkgredis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}
	var lines []Line
	if err := json.Unmarshal([]byte(payload), &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (r *RedisStorage) Save(ctx context.Context, sessionID string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, r.client.CartKey(sessionID), string(payload), cartTTL); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.client.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
