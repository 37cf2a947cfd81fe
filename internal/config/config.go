package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that unmarshals from strings like "45m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	// StatePath is the shared store location. With the sqlite backend the
	// extension should be .db, with the file backend .json.
	StatePath    string `toml:"state_path" envconfig:"STATE_PATH"`
	StateBackend string `toml:"state_backend" envconfig:"STATE_BACKEND"` // file|sqlite

	OverrideDuration Duration `toml:"override_duration" envconfig:"OVERRIDE_DURATION"`
	PollInterval     Duration `toml:"poll_interval" envconfig:"POLL_INTERVAL"`
	WarnBefore       Duration `toml:"warn_before" envconfig:"WARN_BEFORE"`

	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"` // debug|info|warn|error
	Notify   *bool  `toml:"notify" envconfig:"NOTIFY"`
}

// SetDefaults fills unset fields with the shipped defaults.
func (c *Config) SetDefaults() {
	if c.StatePath == "" {
		c.StatePath = "/var/lib/appwarden/state.json"
	}
	if c.StateBackend == "" {
		c.StateBackend = "file"
	}
	if c.OverrideDuration == 0 {
		c.OverrideDuration = Duration(45 * time.Minute)
	}
	if c.PollInterval == 0 {
		c.PollInterval = Duration(1 * time.Minute)
	}
	if c.WarnBefore == 0 {
		c.WarnBefore = Duration(5 * time.Minute)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Notify == nil {
		defaultVal := true
		c.Notify = &defaultVal
	}
}

// Load reads the TOML config file (a missing file is fine), applies
// APPWARDEN_* environment overrides, then defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := envconfig.Process("APPWARDEN", &cfg); err != nil {
		return nil, err
	}

	cfg.SetDefaults()
	return &cfg, nil
}

// LoadFromBytes parses config from raw TOML and applies defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return &cfg, nil
}
