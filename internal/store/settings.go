package store

import (
	"encoding/json"
	"sync"

	"github.com/sadopc/maya/internal/storage"
)

// SettingsStore owns the active Settings snapshot, mirrored to the
// backend on every replacement.
type SettingsStore struct {
	mu       sync.Mutex
	backend  storage.Backend
	settings Settings
	degraded bool
}

// NewSettingsStore loads persisted settings, falling back to
// DefaultSettings on first run or an unreadable record.
func NewSettingsStore(backend storage.Backend) *SettingsStore {
	s := &SettingsStore{
		backend:  backend,
		settings: DefaultSettings(),
	}
	if raw, ok, err := backend.Get(settingsKey); err == nil && ok {
		var loaded Settings
		if json.Unmarshal([]byte(raw), &loaded) == nil && loaded.Validate() == nil {
			s.settings = loaded
		}
	}
	return s
}

// Current returns the active settings snapshot.
func (s *SettingsStore) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Replace fully overwrites the current settings. Invalid settings are
// rejected without touching state.
func (s *SettingsStore) Replace(next Settings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = next
	data, err := json.Marshal(next)
	if err == nil {
		err = s.backend.Set(settingsKey, string(data))
	}
	if err != nil {
		s.degraded = true
	}
	return nil
}

// Degraded reports whether a persistence write has failed this session.
func (s *SettingsStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}
