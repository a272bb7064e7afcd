package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore is a process-local Store. It backs tests and the
// --ephemeral mode of the CLI.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string

	// txMu serializes Atomically calls; a failed fn restores the snapshot
	// taken before it ran.
	txMu sync.Mutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	snapshot := maps.Clone(m.data)
	m.mu.RUnlock()

	defer func() {
		if p := recover(); p != nil {
			m.restore(snapshot)
			panic(p)
		}
		if err != nil {
			m.restore(snapshot)
		}
	}()

	return fn(ctx)
}

func (m *MemoryStore) restore(snapshot map[string]string) {
	m.mu.Lock()
	m.data = snapshot
	m.mu.Unlock()
}

// Len is the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
