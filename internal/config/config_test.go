package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        time.Duration
		expectError bool
	}{
		{"Minutes", "45m", 45 * time.Minute, false},
		{"Composite", "1h30m", 90 * time.Minute, false},
		{"Invalid", "soon", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, d.Std())
			}
		})
	}
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, "/var/lib/appwarden/state.json", cfg.StatePath)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.Equal(t, 45*time.Minute, cfg.OverrideDuration.Std())
	assert.Equal(t, time.Minute, cfg.PollInterval.Std())
	assert.Equal(t, 5*time.Minute, cfg.WarnBefore.Std())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, *cfg.Notify)
}

func TestLoadFromBytes(t *testing.T) {
	tomlData := `
state_path = "/tmp/appwarden.db"
state_backend = "sqlite"
override_duration = "30m"
poll_interval = "15s"
log_level = "debug"
notify = false
`
	cfg, err := LoadFromBytes([]byte(tomlData))
	assert.NoError(t, err)

	assert.Equal(t, "/tmp/appwarden.db", cfg.StatePath)
	assert.Equal(t, "sqlite", cfg.StateBackend)
	assert.Equal(t, 30*time.Minute, cfg.OverrideDuration.Std())
	assert.Equal(t, 15*time.Second, cfg.PollInterval.Std())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, *cfg.Notify)
	// Unset fields still default.
	assert.Equal(t, 5*time.Minute, cfg.WarnBefore.Std())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.NoError(t, err)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.Equal(t, 45*time.Minute, cfg.OverrideDuration.Std())
}

func TestLoadEnvOverride(t *testing.T) {
	os.Setenv("APPWARDEN_OVERRIDE_DURATION", "20m")
	defer os.Unsetenv("APPWARDEN_OVERRIDE_DURATION")

	path := filepath.Join(t.TempDir(), "config.toml")
	assert.NoError(t, os.WriteFile(path, []byte(`override_duration = "30m"`), 0o644))

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, 20*time.Minute, cfg.OverrideDuration.Std())
}
