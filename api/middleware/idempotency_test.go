package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdempotencyStore struct {
	mu      sync.Mutex
	values  map[string]string
	setErrs int
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{values: map[string]string{}}
}

func (s *fakeIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	if !ok {
		return "", redis.Nil
	}
	return value, nil
}

func (s *fakeIdempotencyStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value.(string)
	return nil
}

func (s *fakeIdempotencyStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	_, exists := s.values[key]
	s.mu.Unlock()
	if exists {
		return false, nil
	}
	return true, s.Set(ctx, key, value, ttl)
}

func (s *fakeIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "sf:idempotency:" + scope + ":" + id
}

func (s *fakeIdempotencyStore) Del(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func idempotencyHandler(t *testing.T, store *fakeIdempotencyStore, calls *int) http.Handler {
	t.Helper()
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"order":"abc"}}`))
	})
	return Idempotency(store, nil, time.Hour)(inner)
}

func newIdempotentRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewBufferString(body))
	req.Header.Set("Idempotency-Key", "key-123")
	return req
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := idempotencyHandler(t, store, &calls)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newIdempotentRequest(`{"delivery_mode":"pickup_location"}`))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newIdempotentRequest(`{"delivery_mode":"pickup_location"}`))
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get("Idempotent-Replay"))
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRejectsBodyMismatch(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := idempotencyHandler(t, store, &calls)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newIdempotentRequest(`{"delivery_mode":"pickup_location"}`))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newIdempotentRequest(`{"delivery_mode":"standard_delivery"}`))
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 1, calls)
}

func TestIdempotencyRequiresHeader(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	handler := idempotencyHandler(t, store, &calls)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, calls)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	store := newFakeIdempotencyStore()
	calls := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"error":{"code":"INSUFFICIENT_STOCK"}}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	handler := Idempotency(store, nil, time.Hour)(inner)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, newIdempotentRequest(`{}`))
	require.Equal(t, http.StatusConflict, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, newIdempotentRequest(`{}`))
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, 2, calls)
}
