// Package config loads runner configuration.
//
// Configuration comes from a single YAML file named by the --config flag or
// the AOC_CONFIG environment variable. There is no automatic discovery: with
// no file, DefaultConfig is used. Environment overrides are applied last.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "AOC_CONFIG"

// Config holds all runner configuration.
type Config struct {
	// Year is used when no year is given on the command line.
	Year int `yaml:"year"`

	// InputDir holds puzzle inputs as <year>/<day>.txt.
	InputDir string `yaml:"input_dir"`

	// Parallelism caps concurrently solved puzzles for `all`.
	Parallelism int `yaml:"parallelism"`

	Puzzles PuzzlesConfig `yaml:"puzzles"`
	Logging LoggingConfig `yaml:"logging"`
	Cloud   CloudConfig   `yaml:"cloud"`
}

// PuzzlesConfig holds per-puzzle knobs.
type PuzzlesConfig struct {
	// TicketMarker is the rule-name prefix selecting the fields multiplied in
	// 2020 day 16 part two.
	TicketMarker string `yaml:"ticket_marker"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level       string `yaml:"level"`    // debug, info, warn, error
	Encoding    string `yaml:"encoding"` // json, console
	Development bool   `yaml:"development"`
}

// CloudConfig configures the HTTP function.
type CloudConfig struct {
	ProjectID string `yaml:"project_id"`
	Location  string `yaml:"location"`
	// InputTable is the fully qualified BigQuery table holding puzzle inputs.
	InputTable string `yaml:"input_table"`
	Port       string `yaml:"port"`
	LocalOnly  bool   `yaml:"local_only"`
	Timeout    string `yaml:"timeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Year:        2020,
		InputDir:    "data",
		Parallelism: 4,
		Puzzles: PuzzlesConfig{
			TicketMarker: "departure",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Cloud: CloudConfig{
			Location: "US",
			Port:     "8080",
			Timeout:  "1m",
		},
	}
}

// Load reads the config file at path on top of the defaults. An empty path
// yields the defaults. Environment overrides are applied either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AOC_YEAR"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.Year = year
		}
	}
	if v := os.Getenv("AOC_INPUT_DIR"); v != "" {
		c.InputDir = v
	}
	if v := os.Getenv("AOC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("AOC_TICKET_MARKER"); v != "" {
		c.Puzzles.TicketMarker = v
	}

	// Cloud Functions runtime
	if v := os.Getenv("PORT"); v != "" {
		c.Cloud.Port = v
	}
	if v := os.Getenv("LOCAL_ONLY"); v != "" {
		c.Cloud.LocalOnly = v == "true"
	}
	if v := os.Getenv("GOOGLE_CLOUD_PROJECT"); v != "" {
		c.Cloud.ProjectID = v
	}
	if v := os.Getenv("AOC_INPUT_TABLE"); v != "" {
		c.Cloud.InputTable = v
	}
}

// GetTimeout returns the HTTP function timeout, defaulting to one minute.
func (c *Config) GetTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Cloud.Timeout); err == nil && d > 0 {
		return d
	}
	return time.Minute
}

// Validate checks the configuration for values the runner cannot use.
func (c *Config) Validate() error {
	if c.Year <= 0 {
		return fmt.Errorf("invalid year %d", c.Year)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log encoding %q", c.Logging.Encoding)
	}
	if c.Cloud.Timeout != "" {
		if _, err := time.ParseDuration(c.Cloud.Timeout); err != nil {
			return fmt.Errorf("invalid cloud timeout %q: %w", c.Cloud.Timeout, err)
		}
	}
	return nil
}
