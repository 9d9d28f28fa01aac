package serverview

import (
	"context"
	"sync"
)

// TokenSource issues monotonically increasing request tokens per key.
// A key identifies one viewer's page (e.g., session id plus page name).
type TokenSource interface {
	Issue(ctx context.Context, key string) (uint64, error)
	Latest(ctx context.Context, key string) (uint64, error)
}

// MemoryTokens is a process-local TokenSource.
type MemoryTokens struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewMemoryTokens constructs an empty MemoryTokens.
func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{latest: make(map[string]uint64)}
}

// Issue returns the next token for key.
func (m *MemoryTokens) Issue(_ context.Context, key string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latest[key]++
	return m.latest[key], nil
}

// Latest returns the most recently issued token for key, or 0.
func (m *MemoryTokens) Latest(_ context.Context, key string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest[key], nil
}
