package store

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/sadopc/maya/internal/storage"
)

// EntryStore owns the ordered collection of logged intake events. The
// collection lives in memory and is mirrored to the backend on every
// append; a failing backend degrades the session to in-memory-only
// rather than failing the mutation.
type EntryStore struct {
	mu       sync.Mutex
	backend  storage.Backend
	entries  []WaterEntry
	now      func() time.Time
	degraded bool
}

// NewEntryStore loads any persisted entries from the backend. Missing
// or unreadable records fall back to an empty collection.
func NewEntryStore(backend storage.Backend) *EntryStore {
	s := &EntryStore{
		backend: backend,
		now:     time.Now,
	}
	if raw, ok, err := backend.Get(entriesKey); err == nil && ok {
		var loaded []WaterEntry
		if json.Unmarshal([]byte(raw), &loaded) == nil {
			s.entries = loaded
		}
	}
	return s
}

// Append validates and records a new intake event at the current time.
// The returned entry carries its assigned ID and timestamp.
func (s *EntryStore) Append(amountMl int) (WaterEntry, error) {
	if amountMl <= 0 {
		return WaterEntry{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ms := s.now().UnixMilli()
	entry := WaterEntry{
		ID:          strconv.FormatInt(ms, 10),
		AmountMl:    amountMl,
		TimestampMs: ms,
	}
	s.entries = append(s.entries, entry)
	s.save()
	return entry, nil
}

// All returns the full collection in insertion order. The returned
// slice is a copy; callers may not mutate the store through it.
func (s *EntryStore) All() []WaterEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]WaterEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Degraded reports whether a persistence write has failed this session.
func (s *EntryStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *EntryStore) save() {
	data, err := json.Marshal(s.entries)
	if err == nil {
		err = s.backend.Set(entriesKey, string(data))
	}
	if err != nil {
		s.degraded = true
	}
}
