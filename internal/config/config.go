// Package config reads the server settings from the environment.
//
// An optional .env file in the working directory is loaded first; variables
// already set in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel       = "COLOR_MCP_LOG_LEVEL"
	EnvMetricsAddr    = "COLOR_MCP_METRICS_ADDR"
	EnvWorkspaceName  = "COLOR_MCP_WORKSPACE_NAME"
	EnvPaletteCount   = "COLOR_MCP_PALETTE_COUNT"
	EnvPaletteMaxSize = "COLOR_MCP_PALETTE_MAX_SIZE"
	EnvPaletteStep    = "COLOR_MCP_PALETTE_STEP"
)

// Defaults used when a variable is unset.
const (
	DefaultLogLevel       = "info"
	DefaultWorkspaceName  = "My Workspace"
	DefaultPaletteCount   = 12
	DefaultPaletteMaxSize = 100
	DefaultPaletteStep    = 32
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config holds the server settings.
type Config struct {
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string

	// MetricsAddr is the listen address for /metrics. Empty disables it.
	MetricsAddr string

	// WorkspaceName names the workspace created at startup.
	WorkspaceName string

	// Palette extraction defaults for image_extract_palette.
	PaletteCount   int
	PaletteMaxSize int
	PaletteStep    int
}

// Load reads .env (if present) and the process environment. Malformed
// numbers are reported as errors rather than silently replaced.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:      strings.ToLower(getEnvOrDefault(EnvLogLevel, DefaultLogLevel)),
		MetricsAddr:   getEnvOrDefault(EnvMetricsAddr, ""),
		WorkspaceName: getEnvOrDefault(EnvWorkspaceName, DefaultWorkspaceName),
	}

	var err error
	if cfg.PaletteCount, err = getIntOrDefault(EnvPaletteCount, DefaultPaletteCount); err != nil {
		return nil, err
	}
	if cfg.PaletteMaxSize, err = getIntOrDefault(EnvPaletteMaxSize, DefaultPaletteMaxSize); err != nil {
		return nil, err
	}
	if cfg.PaletteStep, err = getIntOrDefault(EnvPaletteStep, DefaultPaletteStep); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects unknown log levels and non-positive palette settings.
func (c *Config) Validate() error {
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level %q (want trace, debug, info, warn or error)", c.LogLevel)
	}
	if strings.TrimSpace(c.WorkspaceName) == "" {
		return fmt.Errorf("workspace name must not be empty")
	}
	if c.PaletteCount < 1 {
		return fmt.Errorf("palette count must be positive, got %d", c.PaletteCount)
	}
	if c.PaletteMaxSize < 1 {
		return fmt.Errorf("palette max size must be positive, got %d", c.PaletteMaxSize)
	}
	if c.PaletteStep < 1 || c.PaletteStep > 255 {
		return fmt.Errorf("palette step must be 1-255, got %d", c.PaletteStep)
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) (int, error) {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
