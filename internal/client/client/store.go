package client

import (
	"context"
	"sync"
)

// TokenStore keeps the session's pair between Session operations.
// Load returns a zero TokenPair and no error when nothing is stored.
type TokenStore interface {
	Load(ctx context.Context) (TokenPair, error)
	Save(ctx context.Context, pair TokenPair) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the pair for the life of the process.
type MemoryStore struct {
	mu   sync.Mutex
	pair TokenPair
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(context.Context) (TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair, nil
}

func (m *MemoryStore) Save(_ context.Context, pair TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = TokenPair{}
	return nil
}
