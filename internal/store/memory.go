package store

import (
	"context"
	"sync"

	"github.com/doughlab/doughcalc/internal/dough"
)

// MemoryStore is an in-memory implementation of dough.Repository.
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[dough.ShareCode]dough.Recipe
}

// NewMemoryStore creates a new in-memory recipe store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes: make(map[dough.ShareCode]dough.Recipe),
	}
}

func (m *MemoryStore) Save(_ context.Context, recipe *dough.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recipes[recipe.Code] = *recipe

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code dough.ShareCode) (*dough.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	recipe, ok := m.recipes[code]
	if !ok {
		return nil, dough.ErrNotFound
	}

	return &recipe, nil
}
