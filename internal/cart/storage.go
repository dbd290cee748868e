package cart

import (
	"context"
	"sync"
)

// Storage persists the full line list for a session on every mutation
// and loads it back verbatim on rehydration.
type Storage interface {
	Load(ctx context.Context, sessionID string) ([]Line, error)
	Save(ctx context.Context, sessionID string, lines []Line) error
	Delete(ctx context.Context, sessionID string) error
}

// MemoryStorage keeps carts in process memory. It backs tests and
// single-instance deployments without a configured redis.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string][]Line
}

// NewMemoryStorage builds an empty in-memory cart store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: map[string][]Line{}}
}

func (m *MemoryStorage) Load(_ context.Context, sessionID string) ([]Line, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	lines := make([]Line, len(stored))
	copy(lines, stored)
	return lines, nil
}

func (m *MemoryStorage) Save(_ context.Context, sessionID string, lines []Line) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]Line, len(lines))
	copy(stored, lines)
	m.carts[sessionID] = stored
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}
