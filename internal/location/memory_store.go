package location

import (
	"context"
	"sync"

	"github.com/bbernstein/lunartide/internal/models"
)

// MemoryStore keeps preferences for the lifetime of the process
type MemoryStore struct {
	mu    sync.RWMutex
	prefs *models.Preferences
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: emptyPreferences()}
}

func (s *MemoryStore) Load(_ context.Context) (*models.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePreferences(s.prefs), nil
}

func (s *MemoryStore) Save(_ context.Context, prefs *models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = clonePreferences(normalize(prefs))
	return nil
}
