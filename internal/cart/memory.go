package cart

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local tooling.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string][]Item
}

// NewMemoryStore builds an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]Item)}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.carts[sessionID]
	out := make([]Item, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, items []Item) error {
	stored := make([]Item, len(items))
	copy(stored, items)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = stored
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
