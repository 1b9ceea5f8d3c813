package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore is an in-memory ports.RevocationStorePort. Revocations are
// lost on restart; use the Redis store when that matters.
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke records tokenID and drops every entry that has already lapsed.
func (m *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for id, exp := range m.revoked {
		if !now.Before(exp) {
			delete(m.revoked, id)
		}
	}
	if now.Before(until) {
		m.revoked[tokenID] = until
	}
	return nil
}

func (m *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	exp, ok := m.revoked[tokenID]
	return ok && m.now().Before(exp), nil
}

// Len reports how many revocations are held
func (m *RevocationStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.revoked)
}
