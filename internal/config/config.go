// Package config loads the optional runtime configuration file. Domain
// preferences (goals, reminder interval) live in the settings store;
// this file only carries machine-level knobs.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all maya configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Reminder ReminderConfig `toml:"reminder"`
}

// DatabaseConfig overrides where the database lives.
type DatabaseConfig struct {
	Path string `toml:"path,omitempty"`
}

// ReminderConfig tunes the reminder poll loop.
type ReminderConfig struct {
	PollSeconds int `toml:"poll_seconds"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Reminder: ReminderConfig{PollSeconds: 60},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "maya")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "maya")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Reminder.PollSeconds <= 0 {
		cfg.Reminder.PollSeconds = 60
	}
	return cfg, nil
}
