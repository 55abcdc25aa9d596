package revoked

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository drops entries whose token would have expired anyway.
type MemoryRepository struct {
	mu   sync.Mutex
	jtis map[string]time.Time
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{jtis: map[string]time.Time{}, now: time.Now}
}

func (r *MemoryRepository) Add(_ context.Context, jti string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jtis[jti]; !ok {
		r.jtis[jti] = expiresAt
	}
	return nil
}

func (r *MemoryRepository) Exists(_ context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.jtis[jti]
	if !ok {
		return false, nil
	}
	if r.now().After(exp) {
		delete(r.jtis, jti)
		return false, nil
	}
	return true, nil
}
