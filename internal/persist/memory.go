package persist

import (
	"context"
	"sync"

	"stylehub/internal/store"
)

// MemoryPersister is a process-local adapter for tests and deployments
// without Redis.
type MemoryPersister struct {
	mu     sync.RWMutex
	states map[string]store.State
}

func NewMemory() *MemoryPersister {
	return &MemoryPersister{states: make(map[string]store.State)}
}

func (m *MemoryPersister) Load(_ context.Context, sessionID string) (store.State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st, ok := m.states[sessionID]
	return st, ok, nil
}

func (m *MemoryPersister) Save(_ context.Context, sessionID string, st store.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[sessionID] = st
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, sessionID)
	return nil
}
