// Package config holds the tool's runtime settings: where PDFs are read
// from, where artifacts are written, and how noisy the diagnostics are.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// Environment variable prefix, e.g. PDF_EXTRACT_INPUT_DIR.
	envPrefix = "PDF_EXTRACT"

	DefaultInputDir  = "data/input"
	DefaultOutputDir = "data/output"
	DefaultLogLevel  = "info"
)

// Config is the resolved tool configuration.
type Config struct {
	InputDir  string
	OutputDir string
	LogLevel  string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputDir:  DefaultInputDir,
		OutputDir: DefaultOutputDir,
		LogLevel:  DefaultLogLevel,
	}
}

// Load resolves the configuration from defaults and environment variables.
func Load() (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("input_dir", cfg.InputDir)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("log_level", cfg.LogLevel)

	cfg.InputDir = v.GetString("input_dir")
	cfg.OutputDir = v.GetString("output_dir")
	cfg.LogLevel = v.GetString("log_level")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the tool cannot run with.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input directory must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory must not be empty")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
}

// TextDir is where extracted plain text is written.
func (c *Config) TextDir() string {
	return filepath.Join(c.OutputDir, "text")
}

// AnnotationsDir is where annotation exports are written.
func (c *Config) AnnotationsDir() string {
	return filepath.Join(c.OutputDir, "annotations")
}

// ReportsDir is where analysis reports are written.
func (c *Config) ReportsDir() string {
	return filepath.Join(c.OutputDir, "reports")
}
