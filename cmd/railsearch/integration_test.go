//go:build integration

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mobil-koeln/railsearch/internal/testutil"
)

var binaryPath string

// TestMain builds the binary before running tests
func TestMain(m *testing.M) {
	// Build the binary
	binaryPath = filepath.Join(os.TempDir(), "railsearch-test")
	build := exec.Command("go", "build", "-o", binaryPath, ".")
	if err := build.Run(); err != nil {
		os.Exit(1)
	}

	// Run tests
	code := m.Run()

	// Cleanup
	_ = os.Remove(binaryPath)
	os.Exit(code)
}

// env holds a per-test offline dataset and recents database.
type env struct {
	dir      string
	dataFile string
	dbFile   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:      dir,
		dataFile: filepath.Join(dir, "stations.json"),
		dbFile:   filepath.Join(dir, "railsearch.db"),
	}
	if err := os.WriteFile(e.dataFile, []byte(testutil.StationsJSON), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return e
}

// run executes the binary offline against the test dataset.
func (e env) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	args = append(args, "--offline", "--offline-file", e.dataFile, "--db", e.dbFile, "--color", "never")
	return runCommandIn(t, e.dir, args...)
}

func runCommand(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	return runCommandIn(t, t.TempDir(), args...)
}

func runCommandIn(t *testing.T, dir string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"XDG_CACHE_HOME="+filepath.Join(dir, "cache"),
		"XDG_DATA_HOME="+filepath.Join(dir, "data"),
	)

	stdout, err := cmd.Output()
	stderr := ""
	exitCode := 0

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			stderr = string(exitErr.Stderr)
		}
	}

	return string(stdout), stderr, exitCode
}

func TestCLI_Version(t *testing.T) {
	stdout, _, exitCode := runCommand(t, "--version")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}

	if !strings.Contains(stdout, "railsearch version") {
		t.Errorf("Expected version output, got: %s", stdout)
	}
}

func TestCLI_Help(t *testing.T) {
	stdout, _, exitCode := runCommand(t, "--help")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}

	if !strings.Contains(stdout, "railsearch finds Indian railway stations") {
		t.Errorf("Expected help text, got: %s", stdout)
	}

	// Check that all commands are listed
	commands := []string{"search", "show", "select", "recent", "nearby", "tui"}
	for _, cmd := range commands {
		if !strings.Contains(stdout, cmd) {
			t.Errorf("Expected command '%s' in help output", cmd)
		}
	}
}

func TestCLI_SearchCommand_MissingQuery(t *testing.T) {
	stdout, stderr, exitCode := runCommand(t, "search")

	// Command should either fail or show help
	if exitCode == 0 && !strings.Contains(stdout, "Usage:") && !strings.Contains(stderr, "Usage:") {
		t.Error("Expected non-zero exit code or help text for missing query")
	}
}

func TestCLI_SearchCommand_Table(t *testing.T) {
	e := newEnv(t)
	stdout, stderr, exitCode := e.run(t, "search", "gziabad")

	if exitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", exitCode, stderr)
	}
	if !strings.Contains(stdout, "GZB") || !strings.Contains(stdout, "Ghaziabad") {
		t.Errorf("Expected Ghaziabad in output, got: %s", stdout)
	}
	if !strings.Contains(stdout, "(offline)") {
		t.Errorf("Expected offline source in header, got: %s", stdout)
	}
}

func TestCLI_SearchCommand_JSONOutput(t *testing.T) {
	e := newEnv(t)
	stdout, _, exitCode := e.run(t, "search", "ndls", "--json")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}

	var results []struct {
		Rank    int `json:"rank"`
		Station struct {
			Code string `json:"code"`
		} `json:"station"`
	}
	if err := json.Unmarshal([]byte(stdout), &results); err != nil {
		t.Fatalf("Expected valid JSON array, got error: %v", err)
	}
	if len(results) == 0 || results[0].Station.Code != "NDLS" {
		t.Errorf("Expected NDLS first, got: %s", stdout)
	}
}

func TestCLI_SearchCommand_NoResults(t *testing.T) {
	e := newEnv(t)
	stdout, _, exitCode := e.run(t, "search", "zzzzzzzzzz")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(stdout, "No stations found") {
		t.Errorf("Expected empty result message, got: %s", stdout)
	}
}

func TestCLI_SearchCommand_InvalidThreshold(t *testing.T) {
	e := newEnv(t)
	_, stderr, exitCode := e.run(t, "search", "pune", "--threshold", "2")

	if exitCode == 0 {
		t.Error("Expected non-zero exit code for threshold above 1")
	}
	if !strings.Contains(stderr, "--threshold") {
		t.Errorf("Expected threshold error, got: %s", stderr)
	}
}

func TestCLI_SearchSelectAndRecent(t *testing.T) {
	e := newEnv(t)

	stdout, stderr, exitCode := e.run(t, "search", "=pune", "--select", "1")
	if exitCode != 0 {
		t.Fatalf("Expected exit code 0, got %d: %s", exitCode, stderr)
	}
	if !strings.Contains(stdout, "Saved PUNE") {
		t.Errorf("Expected save confirmation, got: %s", stdout)
	}

	if _, stderr, exitCode := e.run(t, "select", "bct"); exitCode != 0 {
		t.Fatalf("select failed: %s", stderr)
	}

	stdout, _, _ = e.run(t, "recent")
	if strings.Index(stdout, "BCT") > strings.Index(stdout, "PUNE") {
		t.Errorf("Expected newest first, got: %s", stdout)
	}

	stdout, _, _ = e.run(t, "recent", "arashtra", "--json")
	var stations []struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal([]byte(stdout), &stations); err != nil {
		t.Fatalf("Expected valid JSON array, got error: %v", err)
	}
	if len(stations) != 2 {
		t.Errorf("Expected both Maharashtra stations, got: %s", stdout)
	}

	if _, _, exitCode := e.run(t, "recent", "--clear"); exitCode != 0 {
		t.Errorf("Expected exit code 0 for --clear, got %d", exitCode)
	}
	stdout, _, _ = e.run(t, "recent")
	if !strings.Contains(stdout, "No stations.") {
		t.Errorf("Expected empty recents, got: %s", stdout)
	}
}

func TestCLI_SearchCommand_SelectOutOfRange(t *testing.T) {
	e := newEnv(t)
	_, _, exitCode := e.run(t, "search", "=pune", "--select", "5")

	if exitCode == 0 {
		t.Error("Expected non-zero exit code for --select past the results")
	}
}

func TestCLI_ShowCommand(t *testing.T) {
	e := newEnv(t)
	stdout, _, exitCode := e.run(t, "show", "ndls")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	for _, want := range []string{"New Delhi", "NDLS", "Trains:", "नई दिल्ली"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in station card, got: %s", want, stdout)
		}
	}
}

func TestCLI_ShowCommand_UnknownStation(t *testing.T) {
	e := newEnv(t)
	_, stderr, exitCode := e.run(t, "show", "xyz")

	if exitCode == 0 {
		t.Error("Expected non-zero exit code for unknown station")
	}
	if !strings.Contains(stderr, `station "XYZ" not found`) {
		t.Errorf("Expected not found error, got: %s", stderr)
	}
}

func TestCLI_NoDataset(t *testing.T) {
	dir := t.TempDir()
	_, stderr, exitCode := runCommandIn(t, dir, "search", "pune", "--offline", "--offline-file", filepath.Join(dir, "missing.json"))

	if exitCode == 0 {
		t.Error("Expected non-zero exit code without any dataset")
	}
	if !strings.Contains(stderr, "no station dataset") {
		t.Errorf("Expected no dataset error, got: %s", stderr)
	}
}

func TestCLI_NearbyCommand_InvalidCoordinates(t *testing.T) {
	e := newEnv(t)
	_, _, exitCode := e.run(t, "nearby", "invalid")

	if exitCode == 0 {
		t.Error("Expected non-zero exit code for invalid coordinates")
	}
}

func TestCLI_NearbyCommand_ValidCoordinates(t *testing.T) {
	e := newEnv(t)
	stdout, _, exitCode := e.run(t, "nearby", "28.6315:77.2167", "--limit", "2")

	if exitCode != 0 {
		t.Errorf("Expected exit code 0, got %d", exitCode)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "NDLS") {
		t.Errorf("Expected NDLS closest, got: %s", stdout)
	}
}

func TestCLI_TUI_NeedsTerminal(t *testing.T) {
	e := newEnv(t)
	_, stderr, exitCode := e.run(t)

	if exitCode == 0 {
		t.Error("Expected non-zero exit code without a terminal")
	}
	if !strings.Contains(stderr, "needs a terminal") {
		t.Errorf("Expected terminal error, got: %s", stderr)
	}
}

func TestCLI_InvalidCommand(t *testing.T) {
	_, _, exitCode := runCommand(t, "invalid-command")

	if exitCode == 0 {
		t.Error("Expected non-zero exit code for invalid command")
	}
}
