package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/testutil"
)

type fakeFetcher struct {
	stations []models.Station
	err      error
	calls    int
}

func (f *fakeFetcher) FetchStations(ctx context.Context) ([]models.Station, error) {
	f.calls++
	return f.stations, f.err
}

func writeOffline(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stationupdated.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoader_PrimaryWins(t *testing.T) {
	primary := &fakeFetcher{stations: testutil.Stations(t)}
	offline := writeOffline(t, testutil.ScenarioJSON)

	store, err := NewLoader(primary, offline).Load(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, store.Source(), SourceCDN)
	testutil.AssertEqual(t, store.Len(), 14)
	testutil.AssertEqual(t, primary.calls, 1)
}

func TestLoader_FallsBackToOffline(t *testing.T) {
	tests := []struct {
		name    string
		primary *fakeFetcher
	}{
		{"fetch error", &fakeFetcher{err: errors.New("connection refused")}},
		{"empty dataset", &fakeFetcher{stations: []models.Station{}}},
		{"only invalid records", &fakeFetcher{stations: []models.Station{{Name: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offline := writeOffline(t, testutil.ScenarioJSON)

			store, err := NewLoader(tt.primary, offline).Load(context.Background())
			testutil.AssertNil(t, err)
			testutil.AssertEqual(t, store.Source(), SourceOffline)
			testutil.AssertCodes(t, store.All(), "NDLS", "BCT")
		})
	}
}

func TestLoader_OfflineOnlySkipsPrimary(t *testing.T) {
	primary := &fakeFetcher{stations: testutil.Stations(t)}
	offline := writeOffline(t, testutil.ScenarioJSON)

	store, err := NewLoader(primary, offline, WithOfflineOnly(true)).Load(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, store.Source(), SourceOffline)
	testutil.AssertEqual(t, primary.calls, 0)
}

func TestLoader_NilPrimary(t *testing.T) {
	offline := writeOffline(t, testutil.ScenarioJSON)

	store, err := NewLoader(nil, offline).Load(context.Background())
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, store.Source(), SourceOffline)
}

func TestLoader_BothFail(t *testing.T) {
	primaryErr := errors.New("dns failure")
	primary := &fakeFetcher{err: primaryErr}
	missing := filepath.Join(t.TempDir(), "missing.json")

	store, err := NewLoader(primary, missing).Load(context.Background())
	if store != nil {
		t.Fatal("expected no store")
	}
	if !errors.Is(err, ErrNoDataset) {
		t.Errorf("error = %v, want ErrNoDataset", err)
	}
	if !errors.Is(err, primaryErr) {
		t.Errorf("error = %v, want it to wrap the primary cause", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap the offline cause", err)
	}
}

func TestLoader_MalformedOffline(t *testing.T) {
	offline := writeOffline(t, `{not json`)

	_, err := NewLoader(nil, offline).Load(context.Background())
	if !errors.Is(err, ErrNoDataset) {
		t.Errorf("error = %v, want ErrNoDataset", err)
	}
	testutil.AssertContains(t, err.Error(), "failed to parse")
}

func TestLoader_CancelledContext(t *testing.T) {
	primary := &fakeFetcher{err: context.Canceled}
	offline := writeOffline(t, testutil.ScenarioJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(primary, offline).Load(ctx)
	if !errors.Is(err, ErrNoDataset) || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want ErrNoDataset and context.Canceled", err)
	}
}

func TestReadFile_NoPath(t *testing.T) {
	_, err := ReadFile("")
	testutil.AssertError(t, err)
}
