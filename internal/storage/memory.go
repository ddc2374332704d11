package storage

import (
	"context"
	"sync"

	"velowatch/internal/models"
)

// MemoryStore — SeenStore в памяти для тестов и прогонов без Redis.
type MemoryStore struct {
	mu   sync.Mutex
	seen map[string]models.Listing
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seen: make(map[string]models.Listing),
	}
}

func (m *MemoryStore) CheckAndMark(_ context.Context, key string, listing models.Listing) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.seen[key]; ok {
		return false, nil
	}
	m.seen[key] = listing
	return true, nil
}

func (m *MemoryStore) Size(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.seen)), nil
}
