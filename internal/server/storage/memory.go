package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Object is what MemoryStorage keeps per key.
type Object struct {
	ContentType string
	Data        []byte
}

type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]Object
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string]Object{}}
}

func (m *MemoryStorage) Put(_ context.Context, key, contentType string, body io.ReadSeeker, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read object %s: %w", key, err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("object %s: read %d bytes, expected %d", key, len(data), size)
	}
	m.mu.Lock()
	m.objects[key] = Object{ContentType: contentType, Data: data}
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) Get(key string) (Object, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.objects[key]
	return o, ok
}
