package store

import (
	"context"
	"sync"

	"github.com/ZaguanLabs/furigo"
)

// MemoryStore is a thread-safe, process-local preference store.
type MemoryStore struct {
	mu   sync.RWMutex
	pref *furigo.UserPreference
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadPreference returns the stored preference or the default.
func (s *MemoryStore) LoadPreference(ctx context.Context) (furigo.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.pref == nil {
		return furigo.DefaultPreference(), nil
	}
	return *s.pref, nil
}

// SavePreference stores the preference.
func (s *MemoryStore) SavePreference(ctx context.Context, pref furigo.UserPreference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pref = &pref
	return nil
}

// Clear forgets the stored preference.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pref = nil
}

// Verify MemoryStore implements PreferenceStore
var _ PreferenceStore = (*MemoryStore)(nil)
