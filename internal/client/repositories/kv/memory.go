package kv

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps values in a map. Values are copied on the way in and out
// so callers cannot alias stored bytes.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if value == nil {
		value = []byte{}
	}
	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) List(_ context.Context) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		result[k] = slices.Clone(v)
	}
	return result, nil
}

func (m *MemoryStore) ReplaceAll(_ context.Context, data map[string][]byte) error {
	next := make(map[string][]byte, len(data))
	for k, v := range data {
		next[k] = slices.Clone(v)
	}
	m.mu.Lock()
	m.data = next
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Keys returns the stored keys in sorted order.
func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.data))
}
