package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/sadopc/maya/internal/storage"
)

// ReminderStore owns the timestamp of the last dispatched reminder.
// Only the reminder scheduler mutates it. Persisting the timestamp
// means stopping and restarting the app never resets the reminder
// countdown.
type ReminderStore struct {
	mu        sync.Mutex
	backend   storage.Backend
	lastFired time.Time
}

// NewReminderStore loads the persisted last-fired timestamp. When none
// exists (first run), the countdown starts at process start.
func NewReminderStore(backend storage.Backend, now time.Time) *ReminderStore {
	s := &ReminderStore{
		backend:   backend,
		lastFired: now,
	}
	if raw, ok, err := backend.Get(lastNotificationKey); err == nil && ok {
		if ms, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			s.lastFired = time.UnixMilli(ms)
		}
	}
	return s
}

// LastFired returns the time of the last reminder dispatch.
func (s *ReminderStore) LastFired() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFired
}

// SetLastFired records a dispatch at t and persists it.
func (s *ReminderStore) SetLastFired(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFired = t
	// Persistence failures leave the in-memory timestamp authoritative
	// for the rest of the session.
	_ = s.backend.Set(lastNotificationKey, strconv.FormatInt(t.UnixMilli(), 10))
}
