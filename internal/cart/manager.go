package cart

import "sync"

// Manager hands out one Store per user. Carts are in-memory and live for
// the lifetime of the process.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager() *Manager {
	return &Manager{
		stores: make(map[string]*Store),
	}
}

func (m *Manager) For(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	store, ok := m.stores[userID]
	if !ok {
		store = NewStore()
		m.stores[userID] = store
	}
	return store
}
