package store

import (
	"errors"
	"testing"
	"time"

	"github.com/sadopc/maya/internal/storage"
)

func newTestEntryStore(t *testing.T) *EntryStore {
	t.Helper()
	return NewEntryStore(storage.NewMemory())
}

// failingBackend rejects all writes to exercise degraded mode.
type failingBackend struct{}

func (failingBackend) Get(string) (string, bool, error) { return "", false, nil }
func (failingBackend) Set(string, string) error         { return errors.New("disk on fire") }

// ============================================================
// Entry store
// ============================================================

func TestAppendEntry(t *testing.T) {
	s := newTestEntryStore(t)

	entry, err := s.Append(250)
	if err != nil {
		t.Fatal(err)
	}
	if entry.AmountMl != 250 {
		t.Fatalf("expected 250ml, got %d", entry.AmountMl)
	}
	if entry.ID == "" {
		t.Fatal("entry should have an ID")
	}
	if entry.TimestampMs == 0 {
		t.Fatal("entry should have a timestamp")
	}

	all := s.All()
	if len(all) != 1 || all[0].ID != entry.ID {
		t.Fatalf("expected the appended entry, got %+v", all)
	}
}

func TestAppendEntryInvalidAmount(t *testing.T) {
	s := newTestEntryStore(t)

	for _, amount := range []int{0, -1, -500} {
		_, err := s.Append(amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Append(%d): expected ErrInvalidAmount, got %v", amount, err)
		}
	}
	if len(s.All()) != 0 {
		t.Fatal("failed append must not mutate state")
	}
}

func TestAllPreservesInsertionOrder(t *testing.T) {
	s := newTestEntryStore(t)
	// Freeze the clock so all entries share a timestamp; order must
	// still follow insertion.
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.Local)
	s.now = func() time.Time { return at }

	s.Append(100)
	s.Append(200)
	s.Append(300)

	all := s.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].AmountMl != 100 || all[1].AmountMl != 200 || all[2].AmountMl != 300 {
		t.Fatalf("insertion order lost: %+v", all)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	s := newTestEntryStore(t)
	s.Append(100)

	all := s.All()
	all[0].AmountMl = 9999

	if s.All()[0].AmountMl != 100 {
		t.Fatal("mutating the returned slice must not affect the store")
	}
}

func TestEntriesRoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	s := NewEntryStore(backend)
	s.Append(200)
	s.Append(750)

	reloaded := NewEntryStore(backend)
	got := reloaded.All()
	want := s.All()
	if len(got) != len(want) {
		t.Fatalf("expected %d entries after reload, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d changed across reload: %+v != %+v", i, got[i], want[i])
		}
	}
}

func TestEntryStoreCorruptRecord(t *testing.T) {
	backend := storage.NewMemory()
	backend.Set("entries", "{not json")

	s := NewEntryStore(backend)
	if len(s.All()) != 0 {
		t.Fatal("corrupt record should fall back to empty collection")
	}
}

func TestEntryStoreDegradesOnWriteFailure(t *testing.T) {
	s := NewEntryStore(failingBackend{})

	entry, err := s.Append(300)
	if err != nil {
		t.Fatalf("append should survive a storage failure: %v", err)
	}
	if entry.AmountMl != 300 {
		t.Fatal("entry should still be recorded in memory")
	}
	if !s.Degraded() {
		t.Fatal("store should report degraded persistence")
	}
}

// ============================================================
// Settings store
// ============================================================

func TestSettingsDefaults(t *testing.T) {
	s := NewSettingsStore(storage.NewMemory())
	got := s.Current()
	want := Settings{DailyGoalMl: 2000, WeeklyGoalMl: 14000, ReminderIntervalMin: 120}
	if got != want {
		t.Fatalf("expected defaults %+v, got %+v", want, got)
	}
}

func TestReplaceSettings(t *testing.T) {
	backend := storage.NewMemory()
	s := NewSettingsStore(backend)

	next := Settings{DailyGoalMl: 2500, WeeklyGoalMl: 17500, ReminderIntervalMin: 60}
	if err := s.Replace(next); err != nil {
		t.Fatal(err)
	}
	if s.Current() != next {
		t.Fatalf("expected %+v, got %+v", next, s.Current())
	}

	// Round-trip through the backend.
	reloaded := NewSettingsStore(backend)
	if reloaded.Current() != next {
		t.Fatalf("settings changed across reload: %+v", reloaded.Current())
	}
}

func TestReplaceSettingsInvalid(t *testing.T) {
	s := NewSettingsStore(storage.NewMemory())
	before := s.Current()

	bad := []Settings{
		{DailyGoalMl: 0, WeeklyGoalMl: 14000, ReminderIntervalMin: 120},
		{DailyGoalMl: 2000, WeeklyGoalMl: -1, ReminderIntervalMin: 120},
		{DailyGoalMl: 2000, WeeklyGoalMl: 14000, ReminderIntervalMin: 0},
	}
	for _, b := range bad {
		if err := s.Replace(b); !errors.Is(err, ErrInvalidSettings) {
			t.Fatalf("Replace(%+v): expected ErrInvalidSettings, got %v", b, err)
		}
	}
	if s.Current() != before {
		t.Fatal("failed replace must not mutate state")
	}
}

func TestSettingsStoreIgnoresInvalidPersisted(t *testing.T) {
	backend := storage.NewMemory()
	backend.Set("settings", `{"dailyGoalMl":0,"weeklyGoalMl":0,"reminderIntervalMin":0}`)

	s := NewSettingsStore(backend)
	if s.Current() != DefaultSettings() {
		t.Fatal("invalid persisted settings should fall back to defaults")
	}
}

// ============================================================
// Reminder store
// ============================================================

func TestReminderStoreFirstRun(t *testing.T) {
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)
	s := NewReminderStore(storage.NewMemory(), start)
	if !s.LastFired().Equal(start) {
		t.Fatalf("first run should start the countdown at process start, got %v", s.LastFired())
	}
}

func TestReminderStorePersists(t *testing.T) {
	backend := storage.NewMemory()
	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)

	s := NewReminderStore(backend, start)
	fired := start.Add(2 * time.Hour)
	s.SetLastFired(fired)

	reloaded := NewReminderStore(backend, start.Add(5*time.Hour))
	if !reloaded.LastFired().Equal(fired) {
		t.Fatalf("expected persisted %v, got %v", fired, reloaded.LastFired())
	}
}

func TestReminderStoreCorruptRecord(t *testing.T) {
	backend := storage.NewMemory()
	backend.Set("last_notification", "yesterday-ish")

	start := time.Date(2025, 6, 1, 8, 0, 0, 0, time.Local)
	s := NewReminderStore(backend, start)
	if !s.LastFired().Equal(start) {
		t.Fatal("corrupt record should fall back to process start")
	}
}

// ============================================================
// Models
// ============================================================

func TestWaterEntryTime(t *testing.T) {
	at := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local)
	e := WaterEntry{TimestampMs: at.UnixMilli()}
	if !e.Time().Equal(at) {
		t.Fatalf("expected %v, got %v", at, e.Time())
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if err := (Settings{}).Validate(); err == nil {
		t.Fatal("zero settings must not validate")
	}
}
