package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo is a typed, unbounded memo table. Concurrent loads of one key share a
// single call to the loader.
type Memo[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	flight  singleflight.Group
}

func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{entries: make(map[string]V)}
}

func (m *Memo[V]) Get(key string) (V, bool) {
	m.mu.RLock()
	v, ok := m.entries[key]
	m.mu.RUnlock()
	return v, ok
}

func (m *Memo[V]) Set(key string, value V) {
	m.mu.Lock()
	m.entries[key] = value
	m.mu.Unlock()
}

func (m *Memo[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// GetOrLoad returns the cached value for key or computes it once. Failed loads are not cached.
func (m *Memo[V]) GetOrLoad(key string, loader func() (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if v, ok := m.Get(key); ok {
		return v, nil
	}

	value, err, _ := m.flight.Do(key, func() (any, error) {
		if cached, ok := m.Get(key); ok {
			return cached, nil
		}
		loaded, loadErr := loader()
		if loadErr != nil {
			return nil, loadErr
		}
		m.Set(key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return value.(V), nil
}
