package store

import (
	"context"
	"log"
	"sync"
	"time"
)

// Persister is the durable write-through adapter behind the store. Load
// reports whether a snapshot existed for the session.
type Persister interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, sessionID string, st State) error
}

const saveTimeout = 2 * time.Second

// Manager multiplexes one Store per shopper session. Stores are created on
// first access, restored from the persister when a snapshot exists, and kept
// for the life of the process.
type Manager struct {
	mu      sync.Mutex
	catalog Lookup
	persist Persister
	logger  *log.Logger
	stores  map[string]*Store
	hooks   []func(sessionID string, st State)
}

func NewManager(catalog Lookup, persist Persister, logger *log.Logger) *Manager {
	return &Manager{
		catalog: catalog,
		persist: persist,
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// OnChange registers a listener for every state change across all sessions.
// Register listeners before the first ForSession call; stores created earlier
// do not pick them up.
func (m *Manager) OnChange(fn func(sessionID string, st State)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// ForSession returns the session's store, creating it on first use.
func (m *Manager) ForSession(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[sessionID]; ok {
		return s
	}

	var s *Store
	if m.persist != nil {
		st, found, err := m.persist.Load(ctx, sessionID)
		if err != nil {
			m.logger.Printf("load state for session %s: %v", sessionID, err)
		} else if found {
			s = Restore(m.catalog, st)
		}
	}
	if s == nil {
		s = New(m.catalog)
	}

	hooks := m.hooks
	s.Subscribe(func(st State) {
		// Persistence is write-through but fire-and-forget: a mutation
		// never waits on or fails with the durable write.
		if m.persist != nil {
			go m.save(sessionID, st)
		}
		for _, fn := range hooks {
			fn(sessionID, st)
		}
	})

	m.stores[sessionID] = s
	return s
}

func (m *Manager) save(sessionID string, st State) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.persist.Save(ctx, sessionID, st); err != nil {
		m.logger.Printf("persist state for session %s: %v", sessionID, err)
	}
}
