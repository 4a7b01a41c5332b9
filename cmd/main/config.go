package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

const (
	scenarioFirstOrder  = "first_order"
	scenarioSecondOrder = "second_order"
)

// Config holds the settings of the demonstration harness.
type Config struct {
	LogLevel     string `json:"log_level" yaml:"log_level"`
	DatabasePath string `json:"database_path" yaml:"database_path"`
	Scenario     string `json:"scenario" yaml:"scenario"`
	Seed         uint64 `json:"seed" yaml:"seed"`           // 0 draws from the global source
	MaxSteps     int    `json:"max_steps" yaml:"max_steps"` // RunToTerminal limit
	RunLength    int    `json:"run_length" yaml:"run_length"`
	Trials       int    `json:"trials" yaml:"trials"` // single-step samples for the frequency check
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "info",
		DatabasePath: "./data/bramble_tally.db?_journal_mode=WAL&_busy_timeout=5000",
		Scenario:     scenarioSecondOrder,
		Seed:         0,
		MaxSteps:     1000,
		RunLength:    100,
		Trials:       1000000,
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch c.Scenario {
	case scenarioFirstOrder, scenarioSecondOrder:
	default:
		return fmt.Errorf("unknown scenario %q", c.Scenario)
	}
	if c.MaxSteps < 0 || c.RunLength < 0 || c.Trials < 0 {
		return fmt.Errorf("max_steps, run_length and trials must not be negative")
	}
	return nil
}

// isYAML reports whether path names a YAML file.
func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig reads the configuration from a JSON or YAML file at the given path.
// If the file doesn't exist, it creates one with default values. The result is
// not validated, so command-line overrides can still be applied.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		// If the file doesn't exist, create it with the default config.
		if os.IsNotExist(err) {
			var data []byte
			if isYAML(path) {
				data, err = yaml.Marshal(config)
			} else {
				data, err = json.MarshalIndent(config, "", "  ")
			}
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// Log a warning instead of failing, as the harness can still run with defaults.
				slog.Warn("failed to write default config file", "path", path, "error", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, config)
	} else {
		err = json.Unmarshal(file, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// newLogger builds the harness logger for the configured level.
func newLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
