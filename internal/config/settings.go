package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/melih/lighthouse-tray/internal/logging"
)

// Config is the content of config.yaml.
type Config struct {
	PollInterval       time.Duration `yaml:"poll_interval"`
	QueryTimeout       time.Duration `yaml:"query_timeout"`
	ActionTimeout      time.Duration `yaml:"action_timeout"`
	StopTimeoutSeconds int           `yaml:"stop_timeout_seconds"`
	DockerHost         string        `yaml:"docker_host,omitempty"` // empty: DOCKER_HOST or the default socket
	Listen             string        `yaml:"listen"`                // empty disables the control API
	Notifications      bool          `yaml:"notifications"`
	LogLevel           string        `yaml:"log_level"`
}

// Default returns the settings used when no file exists.
func Default() *Config {
	return &Config{
		PollInterval:       time.Second,
		QueryTimeout:       5 * time.Second,
		ActionTimeout:      30 * time.Second,
		StopTimeoutSeconds: 10,
		Listen:             "127.0.0.1:7465",
		Notifications:      true,
		LogLevel:           logging.LevelInfo,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}
	if c.QueryTimeout <= 0 {
		errs = append(errs, fmt.Errorf("query_timeout must be positive, got %s", c.QueryTimeout))
	}
	if c.ActionTimeout <= 0 {
		errs = append(errs, fmt.Errorf("action_timeout must be positive, got %s", c.ActionTimeout))
	}
	if c.StopTimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("stop_timeout_seconds must be positive, got %d", c.StopTimeoutSeconds))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Load reads and validates the settings at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := LoadYAMLOrDefault(path, Default)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the settings to path.
func Save(path string, cfg *Config) error {
	return SaveYAML(path, cfg)
}
