package tui

import (
	"fmt"
	"time"

	"github.com/sadopc/maya/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewHome viewState = iota
	viewLog
	viewHistory
	viewSettings
)

var viewNames = []string{"Home", "Log", "History", "Settings"}

// --- Messages ---

type entryLoggedMsg struct {
	entry store.WaterEntry
}

type settingsSavedMsg struct{}

type switchViewMsg struct {
	view viewState
}

type reminderMsg struct {
	title string
	body  string
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatMl(ml int) string {
	if ml >= 1000 && ml%100 == 0 {
		return fmt.Sprintf("%.1fL", float64(ml)/1000)
	}
	return fmt.Sprintf("%dml", ml)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
