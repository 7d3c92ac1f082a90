// Package config loads application configuration from environment
// variables. Every setting has a usable default so the manager runs with
// no environment at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Engine defaults
	Engine EngineConfig

	// Observability
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Debug       bool
	Version     string
}

// EngineConfig holds engine defaults applied when commands omit
// optional arguments.
type EngineConfig struct {
	// Capacity used when add_classroom omits max capacity
	DefaultCapacity int

	// Page size used when list commands omit it
	DefaultPageSize int
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	env := Environment(getEnv("VCM_ENV", "development"))

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("VCM_APP_NAME", "virtual-classroom-manager"),
			Environment: env,
			Debug:       env == EnvDevelopment || getEnvBool("VCM_DEBUG", false),
			Version:     getEnv("VCM_VERSION", "0.1.0"),
		},
		Engine: EngineConfig{
			DefaultCapacity: getEnvInt("VCM_DEFAULT_CAPACITY", 50),
			DefaultPageSize: getEnvInt("VCM_DEFAULT_PAGE_SIZE", 10),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("VCM_LOG_LEVEL", "info"),
			LogFormat: getEnv("VCM_LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if c.Engine.DefaultCapacity <= 0 {
		errs = append(errs, "VCM_DEFAULT_CAPACITY must be greater than 0")
	}
	if c.Engine.DefaultPageSize <= 0 || c.Engine.DefaultPageSize > 100 {
		errs = append(errs, "VCM_DEFAULT_PAGE_SIZE must be 1-100")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "VCM_LOG_LEVEL must be one of: debug, info, warn, error")
	}
	switch c.Observability.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, "VCM_LOG_FORMAT must be json or text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
