package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/maya/internal/config"
	"github.com/sadopc/maya/internal/reminder"
	"github.com/sadopc/maya/internal/storage"
	"github.com/sadopc/maya/internal/store"
	"github.com/sadopc/maya/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = storage.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	// An unopenable database degrades to a session-only run instead of
	// refusing to start.
	var backend storage.Backend
	db, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: database unavailable, running session-only: %v\n", err)
		backend = storage.NewMemory()
	} else {
		defer db.Close()
		backend = db
	}

	entries := store.NewEntryStore(backend)
	settings := store.NewSettingsStore(backend)
	reminders := store.NewReminderStore(backend, time.Now())

	notifier := tui.NewNotifier()
	app := tui.NewApp(entries, settings, notifier)
	p := tea.NewProgram(app, tea.WithAltScreen())
	notifier.Attach(p)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := reminder.New(reminder.Config{
		Settings: settings,
		State:    reminders,
		Notifier: notifier,
		Period:   time.Duration(cfg.Reminder.PollSeconds) * time.Second,
	})
	go sched.Run(ctx)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
