package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no -config flag is given.
const EnvPath = "FISHCLICKER_CONFIG"

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// App holds all configuration for the fishclicker CLI.
type App struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	Storage StorageConfig `yaml:"storage"`

	// Tuning
	TuningDir    string `yaml:"tuning_dir"`    // holds games/default.yaml and games/rulesets/
	Ruleset      string `yaml:"ruleset"`       // optional ruleset layered over the defaults
	ReloadPollMS int    `yaml:"reload_poll_ms"` // tuning watcher interval during auto

	ExportFormat string `yaml:"export_format"` // json or msgpack, used when the file extension says nothing
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"` // sqlite database file
}

// Default returns App config with sensible defaults.
func Default() App {
	return App{
		LogLevel: "info",
		Storage: StorageConfig{
			Driver: DriverSQLite,
			Path:   "fishclicker.db",
		},
		TuningDir:    "configs",
		ReloadPollMS: 1000,
		ExportFormat: "json",
	}
}

// Load loads App config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (App, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects unknown drivers and levels.
func (a App) Validate() error {
	switch a.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if a.Storage.Path == "" {
			return fmt.Errorf("storage.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", a.Storage.Driver)
	}
	if _, err := ParseLevel(a.LogLevel); err != nil {
		return err
	}
	if a.ReloadPollMS <= 0 {
		return fmt.Errorf("reload_poll_ms must be > 0")
	}
	return nil
}

// ReloadInterval returns the tuning watcher poll interval.
func (a App) ReloadInterval() time.Duration {
	return time.Duration(a.ReloadPollMS) * time.Millisecond
}

// ParseLevel maps a config level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
