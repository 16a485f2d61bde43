// Package config loads the dockmon YAML configuration.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Poll    PollConfig    `yaml:"poll"`
	Logs    LogsConfig    `yaml:"logs"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Logging LoggingConfig `yaml:"logging"`
}

type PollConfig struct {
	IntervalSeconds int `yaml:"interval_seconds"` // daemon poll cadence
}

type LogsConfig struct {
	TailLines int `yaml:"tail_lines"` // initial tail when a stream starts
	BufferCap int `yaml:"buffer_cap"` // max retained log lines
}

type RuntimeConfig struct {
	Host string `yaml:"host"` // overrides DOCKER_HOST when set
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty disables logging (the TUI owns the terminal)
}

// Default config
func DefaultConfig() *Config {
	return &Config{
		Poll: PollConfig{
			IntervalSeconds: 2,
		},
		Logs: LogsConfig{
			TailLines: 200,
			BufferCap: 10000,
		},
		Runtime: RuntimeConfig{
			Host: "",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// PollInterval returns the poll cadence as a duration, never below 1s.
func (c *Config) PollInterval() time.Duration {
	if c.Poll.IntervalSeconds < 1 {
		return time.Second
	}
	return time.Duration(c.Poll.IntervalSeconds) * time.Second
}

// GetConfigPath returns the per-user config file location.
func GetConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dockmon", "config.yml"), nil
	}

	// Fall back to ~/.config
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "dockmon", "config.yml"), nil
}

// Load reads the config from path, or from the default location when path is
// empty. A missing or unparseable file falls back to defaults rather than
// failing: the dashboard must come up even with a broken config.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return DefaultConfig(), nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), nil
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), nil
	}

	// Apply defaults for missing or nonsense fields
	if cfg.Poll.IntervalSeconds <= 0 {
		cfg.Poll.IntervalSeconds = 2
	}
	if cfg.Logs.TailLines <= 0 {
		cfg.Logs.TailLines = 200
	}
	if cfg.Logs.BufferCap <= 0 {
		cfg.Logs.BufferCap = 10000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	return cfg, nil
}

// Save writes the config back to the default location.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
