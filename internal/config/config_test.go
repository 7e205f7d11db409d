package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mobil-koeln/railsearch/internal/api"
	"github.com/mobil-koeln/railsearch/internal/testutil"
)

// clearEnv isolates a test from RAILSEARCH_* variables and any .env file in
// the working directory.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "RAILSEARCH_") {
			t.Setenv(key, "")
		}
	}
	t.Chdir(t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	cfg := Load()
	testutil.AssertEqual(t, cfg.DataURL, api.DefaultDatasetURL)
	testutil.AssertEqual(t, cfg.OfflineFile, DefaultOfflineFile)
	testutil.AssertEqual(t, cfg.DBPath, filepath.Join("/tmp/data", "railsearch", "railsearch.db"))
	testutil.AssertEqual(t, cfg.CacheTTL, 24*time.Hour)
	testutil.AssertEqual(t, cfg.HTTPTimeout, 15*time.Second)
	testutil.AssertEqual(t, cfg.Threshold, 0.4)
	testutil.AssertEqual(t, cfg.ResultLimit, 50)
	testutil.AssertEqual(t, cfg.Color, "auto")
	testutil.AssertFalse(t, cfg.Offline)
	testutil.AssertFalse(t, cfg.Verbose)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAILSEARCH_DATA_URL", "http://localhost:8080/stations.json")
	t.Setenv("RAILSEARCH_OFFLINE", "true")
	t.Setenv("RAILSEARCH_THRESHOLD", "0.25")
	t.Setenv("RAILSEARCH_RESULT_LIMIT", "20")
	t.Setenv("RAILSEARCH_CACHE_TTL", "90m")
	t.Setenv("RAILSEARCH_VERBOSE", "1")

	cfg := Load()
	testutil.AssertEqual(t, cfg.DataURL, "http://localhost:8080/stations.json")
	testutil.AssertTrue(t, cfg.Offline)
	testutil.AssertEqual(t, cfg.Threshold, 0.25)
	testutil.AssertEqual(t, cfg.ResultLimit, 20)
	testutil.AssertEqual(t, cfg.CacheTTL, 90*time.Minute)
	testutil.AssertTrue(t, cfg.Verbose)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("RAILSEARCH_THRESHOLD", "1.5")
	t.Setenv("RAILSEARCH_RESULT_LIMIT", "lots")
	t.Setenv("RAILSEARCH_CACHE_TTL", "-1h")
	t.Setenv("RAILSEARCH_OFFLINE", "maybe")

	cfg := Load()
	testutil.AssertEqual(t, cfg.Threshold, 0.4)
	testutil.AssertEqual(t, cfg.ResultLimit, 50)
	testutil.AssertEqual(t, cfg.CacheTTL, 24*time.Hour)
	testutil.AssertFalse(t, cfg.Offline)
}

func TestGetEnvAsRatio(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 0.4},
		{"0", 0},
		{"1", 1},
		{"0.75", 0.75},
		{"-0.1", 0.4},
		{"1.01", 0.4},
		{"half", 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Setenv("RAILSEARCH_TEST_RATIO", tt.raw)
			testutil.AssertEqual(t, getEnvAsRatio("RAILSEARCH_TEST_RATIO", 0.4), tt.want)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	err := os.WriteFile(".env", []byte("RAILSEARCH_OFFLINE_FILE=/srv/stations.json\nRAILSEARCH_COLOR=never\n"), 0o600)
	testutil.AssertNil(t, err)
	t.Cleanup(func() {
		// godotenv.Load sets variables directly in the process environment.
		_ = os.Unsetenv("RAILSEARCH_OFFLINE_FILE")
		_ = os.Unsetenv("RAILSEARCH_COLOR")
	})

	cfg := Load()
	testutil.AssertEqual(t, cfg.OfflineFile, "/srv/stations.json")
	testutil.AssertEqual(t, cfg.Color, "never")
}
