// Package cache provides result caching for the analysis API. Because the
// calculators are pure, a report can be reused for as long as the uploaded
// portfolio it was computed from is byte-identical.
package cache

import (
	"context"
	"sync"
)

// Repository is the cache abstraction used by the HTTP layer.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Memory is an in-process Repository, the default when no Redis address is
// configured.
type Memory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{items: make(map[string]string)}
}

// Get returns the cached value for key, if present.
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.items[key]
	return value, ok
}

// Set stores a value under key.
func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
