package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const configFileName = "config.toml"

// Config holds the user-tunable settings.
type Config struct {
	// StoragePath is the SQLite file; empty means the XDG default.
	StoragePath string `toml:"storage_path"`
	// DefaultFilter is the filter mode selected on startup.
	DefaultFilter string `toml:"default_filter"`
	// ReminderIntervalSecs is the cadence of the reminder check.
	ReminderIntervalSecs int `toml:"reminder_interval_secs"`
	// NotifyDisplaySecs is how long a reminder banner stays visible.
	NotifyDisplaySecs int `toml:"notify_display_secs"`
}

// DefaultPath returns the XDG config path for the settings file,
// creating the directory if needed.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	dir := filepath.Join(configHome, "tend")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// LoadOrCreate reads the config at path, writing one with defaults if it
// does not exist yet. Missing fields fall back to defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.ReminderIntervalSecs <= 0 {
		cfg.ReminderIntervalSecs = 60
	}
	if cfg.NotifyDisplaySecs <= 0 {
		cfg.NotifyDisplaySecs = 5
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DefaultFilter:        "all",
		ReminderIntervalSecs: 60,
		NotifyDisplaySecs:    5,
	}
}
