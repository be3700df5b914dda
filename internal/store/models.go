package store

import (
	"errors"
	"time"
)

// Validation errors surfaced to callers. Mutations fail without
// touching state when these are returned.
var (
	ErrInvalidAmount   = errors.New("amount must be a positive number of milliliters")
	ErrInvalidSettings = errors.New("settings fields must all be positive")
)

// Storage keys for the three independently persisted records.
const (
	entriesKey          = "entries"
	settingsKey         = "settings"
	lastNotificationKey = "last_notification"
)

// WaterEntry is a single logged intake event. Entries are immutable
// once created.
type WaterEntry struct {
	ID          string `json:"id"`
	AmountMl    int    `json:"amountMl"`
	TimestampMs int64  `json:"timestampMs"`
}

// Time returns the entry creation time in the local timezone.
func (e WaterEntry) Time() time.Time {
	return time.UnixMilli(e.TimestampMs)
}

// Settings holds the user's hydration preferences. Replaced wholesale
// by the settings screen.
type Settings struct {
	DailyGoalMl         int `json:"dailyGoalMl"`
	WeeklyGoalMl        int `json:"weeklyGoalMl"`
	ReminderIntervalMin int `json:"reminderIntervalMin"`
}

// DefaultSettings is the first-run configuration.
func DefaultSettings() Settings {
	return Settings{
		DailyGoalMl:         2000,
		WeeklyGoalMl:        14000,
		ReminderIntervalMin: 120,
	}
}

// Validate reports whether all settings fields are positive.
func (s Settings) Validate() error {
	if s.DailyGoalMl <= 0 || s.WeeklyGoalMl <= 0 || s.ReminderIntervalMin <= 0 {
		return ErrInvalidSettings
	}
	return nil
}

// ReminderIntervals are the choices offered by the settings screen, in
// minutes. The model itself accepts any positive interval.
var ReminderIntervals = []int{30, 60, 90, 120, 180, 240}
