// Package config reads process configuration from PARISH_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/parish/internal/schedule"
)

// Config holds everything main needs to wire the app.
type Config struct {
	DBPath string
	// LogUseCases enables the slog use-case observer on stderr.
	LogUseCases bool
	// Location is the zone schedule computations run in.
	Location *time.Location
	// Language overrides the stored language preference when set.
	Language     string
	MassDuration time.Duration
}

// DefaultConfig returns a Config with defaults. DBPath is left empty
// and filled by Load from the home directory.
func DefaultConfig() Config {
	return Config{
		Location:     time.Local,
		MassDuration: schedule.DefaultDuration,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for unset or unparsable values. An unknown PARISH_TZ is an error.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("PARISH_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".parish", "parish.db")
	}
	if v := os.Getenv("PARISH_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("PARISH_TZ"); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return cfg, fmt.Errorf("PARISH_TZ: %w", err)
		}
		cfg.Location = loc
	}
	cfg.Language = os.Getenv("PARISH_LANG")
	if v := os.Getenv("PARISH_MASS_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MassDuration = time.Duration(n) * time.Minute
		}
	}
	return cfg, nil
}
