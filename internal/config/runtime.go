// Package config provides centralized configuration for studytrack runtime values.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "STUDYTRACK_"

// Storage backends.
const (
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	Storage   StorageConfig
	Analytics AnalyticsConfig
	Log       LogConfig

	// File is the env file the values were merged from, if any.
	File string
}

// StorageConfig selects and locates the entry store.
type StorageConfig struct {
	// Backend is "badger" or "postgres".
	// Default: badger
	Backend string

	// Path is the Badger directory. Empty means the XDG data directory;
	// ":memory:" opens an in-memory store.
	Path string

	// PostgresDSN is the pgx connection string for the postgres backend.
	PostgresDSN string
}

// AnalyticsConfig tunes streak and insight computation.
type AnalyticsConfig struct {
	// StreakPolicy is "require-today" or "grace".
	// Default: require-today
	StreakPolicy string

	// MinInsightEntries is the smallest window that yields insights.
	// Default: 7
	MinInsightEntries int

	// InsightWindowDays is how many days ending today feed insight generation.
	// Default: 14
	InsightWindowDays int

	// StatsWindowDays is the length of the stats window and of the window it is compared with.
	// Default: 7
	StatsWindowDays int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is debug, info, warn or error.
	// Default: warn
	Level string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			Backend: BackendBadger,
		},
		Analytics: AnalyticsConfig{
			StreakPolicy:      "require-today",
			MinInsightEntries: 7,
			InsightWindowDays: 14,
			StatsWindowDays:   7,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultFile returns the env file read at startup.
func DefaultFile() string {
	return filepath.Join(xdg.ConfigHome, "studytrack", "studytrack.env")
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// Load returns defaults overridden by values in file (if it exists) and
// then by the process environment.
func Load(file string) (*RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	if err := cfg.LoadFile(file); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges a dotenv-format file under the process environment.
// A missing file is not an error.
func (c *RuntimeConfig) LoadFile(file string) error {
	if file == "" {
		c.loadFromEnv()
		return nil
	}

	values, err := godotenv.Read(file)
	if err != nil {
		if os.IsNotExist(err) {
			c.loadFromEnv()
			return nil
		}
		return err
	}

	c.File = file
	c.load(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return values[key]
	})
	return nil
}

func (c *RuntimeConfig) loadFromEnv() {
	c.load(os.Getenv)
}

// load applies overrides from lookup. Invalid values keep the current setting.
func (c *RuntimeConfig) load(lookup func(string) string) {
	get := func(name string) string {
		return strings.TrimSpace(lookup(EnvPrefix + name))
	}

	// Storage configuration
	if v := get("STORAGE_BACKEND"); v != "" {
		c.Storage.Backend = strings.ToLower(v)
	}
	if v := get("DATABASE"); v != "" {
		c.Storage.Path = v
	}
	if v := get("POSTGRES_DSN"); v != "" {
		c.Storage.PostgresDSN = v
	}

	// Analytics configuration
	if v := get("STREAK_POLICY"); v != "" {
		c.Analytics.StreakPolicy = strings.ToLower(v)
	}
	if v := get("MIN_INSIGHT_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analytics.MinInsightEntries = n
		}
	}
	if v := get("INSIGHT_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analytics.InsightWindowDays = n
		}
	}
	if v := get("STATS_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Analytics.StatsWindowDays = n
		}
	}

	// Log configuration
	if v := get("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}

// InMemory reports whether the Badger store should live in memory.
func (s StorageConfig) InMemory() bool {
	return s.Path == ":memory:"
}

// Pairs returns the effective settings as ordered key/value pairs for display.
// The DSN is returned verbatim; callers mask it.
func (c *RuntimeConfig) Pairs() [][2]string {
	return [][2]string{
		{"storage.backend", c.Storage.Backend},
		{"storage.path", c.Storage.Path},
		{"storage.postgres_dsn", c.Storage.PostgresDSN},
		{"analytics.streak_policy", c.Analytics.StreakPolicy},
		{"analytics.min_insight_entries", strconv.Itoa(c.Analytics.MinInsightEntries)},
		{"analytics.insight_window_days", strconv.Itoa(c.Analytics.InsightWindowDays)},
		{"analytics.stats_window_days", strconv.Itoa(c.Analytics.StatsWindowDays)},
		{"log.level", c.Log.Level},
		{"config.file", c.File},
	}
}
