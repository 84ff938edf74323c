package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Constants
const (
	// FileName is the optional configuration file looked up in the working directory
	FileName = ".integrity-scan.yaml"

	DefaultHistoryCapacity = 100
)

// Config represents the scanner configuration
type Config struct {
	HistoryCapacity int      `yaml:"history_capacity"` // completed files kept on screen
	LogDir          string   `yaml:"log_dir"`          // where the manifest is created
	LogLevel        string   `yaml:"log_level"`        // diagnostic log level
	DiagnosticLog   string   `yaml:"diagnostic_log"`   // diagnostic log file, stderr when empty
	Exclude         []string `yaml:"exclude"`          // glob patterns skipped during enumeration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		HistoryCapacity: DefaultHistoryCapacity,
		LogDir:          ".",
		LogLevel:        "info",
	}
}

// Load reads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Apply defaults for missing values
	if cfg.HistoryCapacity == 0 {
		cfg.HistoryCapacity = DefaultHistoryCapacity
	}
	if cfg.LogDir == "" {
		cfg.LogDir = "."
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// LoadOptional is Load, except a missing file yields the defaults.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity must be at least 1")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	for _, p := range c.Exclude {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", p, err)
		}
	}

	return nil
}
