// Package config resolves runtime settings from defaults, an optional .env
// file and RAILSEARCH_* environment variables. Command-line flags are
// applied on top by the caller.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mobil-koeln/railsearch/internal/api"
	"github.com/mobil-koeln/railsearch/internal/cache"
	"github.com/mobil-koeln/railsearch/internal/search"
	"github.com/mobil-koeln/railsearch/internal/storage"
)

// DefaultOfflineFile is the fallback dataset path.
const DefaultOfflineFile = "data/stationupdated.json"

// Config holds application configuration
type Config struct {
	// Dataset
	DataURL     string
	OfflineFile string
	Offline     bool
	HTTPTimeout time.Duration

	// Cache and storage
	CacheDir string
	CacheTTL time.Duration
	NoCache  bool
	DBPath   string

	// Search
	Threshold   float64
	ResultLimit int

	// Output
	Color   string
	Verbose bool
}

// Load loads configuration from environment variables
func Load() *Config {
	// Try to load .env file (optional for local development)
	_ = godotenv.Load()

	return &Config{
		DataURL:     getEnv("RAILSEARCH_DATA_URL", api.DefaultDatasetURL),
		OfflineFile: getEnv("RAILSEARCH_OFFLINE_FILE", DefaultOfflineFile),
		Offline:     getEnvAsBool("RAILSEARCH_OFFLINE", false),
		HTTPTimeout: getEnvAsDuration("RAILSEARCH_HTTP_TIMEOUT", 15*time.Second),

		CacheDir: getEnv("RAILSEARCH_CACHE_DIR", cache.DefaultCacheDir()),
		CacheTTL: getEnvAsDuration("RAILSEARCH_CACHE_TTL", 24*time.Hour),
		NoCache:  getEnvAsBool("RAILSEARCH_NO_CACHE", false),
		DBPath:   getEnv("RAILSEARCH_DB", storage.DefaultDBPath()),

		Threshold:   getEnvAsRatio("RAILSEARCH_THRESHOLD", search.DefaultThreshold),
		ResultLimit: getEnvAsInt("RAILSEARCH_RESULT_LIMIT", search.DefaultLimit),

		Color:   getEnv("RAILSEARCH_COLOR", "auto"),
		Verbose: getEnvAsBool("RAILSEARCH_VERBOSE", false),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid setting", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

// getEnvAsRatio reads a value in [0, 1]. Anything else falls back to the
// default.
func getEnvAsRatio(key string, defaultValue float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		slog.Warn("ignoring invalid setting", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("ignoring invalid setting", "key", key, "value", raw)
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		slog.Warn("ignoring invalid setting", "key", key, "value", raw)
		return defaultValue
	}
	return v
}
