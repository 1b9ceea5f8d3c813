package memory

import (
	"context"
	"sync"
)

// CartStore is an in-memory implementation of ports.CartPersistencePort for
// tests and local development. Snapshots do not survive a restart.
type CartStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

// NewCartStore creates an empty in-memory cart store
func NewCartStore() *CartStore {
	return &CartStore{snapshots: make(map[string][]byte)}
}

func (m *CartStore) Load(ctx context.Context, namespace string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[namespace]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (m *CartStore) Save(ctx context.Context, namespace string, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[namespace] = append([]byte(nil), snapshot...)
	return nil
}

func (m *CartStore) Delete(ctx context.Context, namespace string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.snapshots, namespace)
	return nil
}

// Ping always succeeds for the in-memory store
func (m *CartStore) Ping(ctx context.Context) error {
	return nil
}

// Len reports how many namespaces hold a snapshot
func (m *CartStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}
