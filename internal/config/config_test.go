package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PARISH_DB", "PARISH_LOG", "PARISH_TZ", "PARISH_LANG", "PARISH_MASS_MINUTES"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".parish", "parish.db"), cfg.DBPath)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, time.Local, cfg.Location)
	assert.Empty(t, cfg.Language)
	assert.Equal(t, time.Hour, cfg.MassDuration)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PARISH_DB", "/tmp/p.db")
	t.Setenv("PARISH_LOG", "1")
	t.Setenv("PARISH_TZ", "UTC")
	t.Setenv("PARISH_LANG", "es")
	t.Setenv("PARISH_MASS_MINUTES", "45")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.True(t, cfg.LogUseCases)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "es", cfg.Language)
	assert.Equal(t, 45*time.Minute, cfg.MassDuration)
}

func TestLoad_InvalidValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PARISH_DB", "/tmp/p.db")
	t.Setenv("PARISH_LOG", "sometimes")
	t.Setenv("PARISH_MASS_MINUTES", "-5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.LogUseCases)
	assert.Equal(t, time.Hour, cfg.MassDuration)
}

func TestLoad_UnknownZone(t *testing.T) {
	clearEnv(t)
	t.Setenv("PARISH_DB", "/tmp/p.db")
	t.Setenv("PARISH_TZ", "Mars/Olympus_Mons")

	_, err := Load()
	assert.ErrorContains(t, err, "PARISH_TZ")
}
