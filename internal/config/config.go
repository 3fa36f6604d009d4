// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/placement-tracker/internal/planning"
	"github.com/jonathan/placement-tracker/internal/store"
	"github.com/jonathan/placement-tracker/internal/timesource"
)

// DefaultStorePath is where the file backend keeps its data when no path is given.
const DefaultStorePath = "placement-data.json"

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults, environment variables or CLI flags.
type Config struct {
	// Storage
	Store       string `json:"store,omitempty"`        // Backend: memory, file, postgres or redis
	StorePath   string `json:"store_path,omitempty"`   // File backend location
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	RedisURL    string `json:"redis_url,omitempty"`    // Redis connection URL
	RedisPrefix string `json:"redis_prefix,omitempty"` // Prefix prepended to every Redis key

	// Clock
	TimeAPIURL     string `json:"time_api_url,omitempty"`     // External time endpoint
	TimeAPITimeout string `json:"time_api_timeout,omitempty"` // Duration, e.g. "3s"
	Offline        bool   `json:"offline,omitempty"`          // Use the local clock only

	// Planning
	MockWeekday string `json:"mock_weekday,omitempty"` // Weekday of the weekly mock test

	// Server
	Port int `json:"port,omitempty"`

	// Logging
	LogFormat string `json:"log_format,omitempty"` // text or json
	Verbose   bool   `json:"verbose,omitempty"`    // Debug-level logging
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Store:          store.BackendFile,
		StorePath:      DefaultStorePath,
		RedisPrefix:    store.DefaultRedisPrefix,
		TimeAPIURL:     timesource.DefaultURL,
		TimeAPITimeout: timesource.DefaultTimeout.String(),
		MockWeekday:    "sunday",
		Port:           8080,
		LogFormat:      "text",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	setString := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}

	setString(&c.Store, "PLACEMENT_STORE")
	setString(&c.StorePath, "PLACEMENT_STORE_PATH")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.RedisURL, "REDIS_URL")
	setString(&c.RedisPrefix, "REDIS_PREFIX")
	setString(&c.TimeAPIURL, "TIME_API_URL")
	setString(&c.MockWeekday, "PLACEMENT_MOCK_WEEKDAY")
	setString(&c.LogFormat, "LOG_FORMAT")

	if v := getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.Store {
	case "", store.BackendMemory, store.BackendFile:
	case store.BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres store")
		}
	case store.BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("config error: 'redis_url' is required for the redis store")
		}
	default:
		return fmt.Errorf("config error: unknown store %q (want memory, file, postgres or redis)", c.Store)
	}

	if c.MockWeekday != "" {
		if _, err := ParseWeekday(c.MockWeekday); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.TimeAPITimeout != "" {
		d, err := time.ParseDuration(c.TimeAPITimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'time_api_timeout': %w", err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'time_api_timeout' must be non-negative")
		}
	}

	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: unknown log_format %q (want text or json)", c.LogFormat)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.RedisPrefix == "" {
		result.RedisPrefix = defaults.RedisPrefix
	}
	if result.TimeAPIURL == "" {
		result.TimeAPIURL = defaults.TimeAPIURL
	}
	if result.TimeAPITimeout == "" {
		result.TimeAPITimeout = defaults.TimeAPITimeout
	}
	if result.MockWeekday == "" {
		result.MockWeekday = defaults.MockWeekday
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// StoreOptions returns the options for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Store,
		Path:        c.StorePath,
		DatabaseURL: c.DatabaseURL,
		RedisURL:    c.RedisURL,
		RedisPrefix: c.RedisPrefix,
	}
}

// PlanOptions returns the plan generation options. Call Validate first.
func (c *Config) PlanOptions() planning.Options {
	opts := planning.DefaultOptions()
	if day, err := ParseWeekday(c.MockWeekday); err == nil && c.MockWeekday != "" {
		opts.MockWeekday = day
	}
	return opts
}

// Timeout returns the time API timeout, or the default when unset or invalid.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.TimeAPITimeout); err == nil && d >= 0 {
		return d
	}
	return timesource.DefaultTimeout
}

// ParseWeekday accepts full or three-letter English weekday names, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if n == full || n == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}
