package dataset

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mobil-koeln/railsearch/internal/api"
	"github.com/mobil-koeln/railsearch/internal/models"
)

// ErrNoDataset is returned when neither the primary nor the fallback source
// produced a usable dataset.
var ErrNoDataset = errors.New("no station dataset available")

// Fetcher retrieves the primary dataset.
type Fetcher interface {
	FetchStations(ctx context.Context) ([]models.Station, error)
}

// Loader fetches the primary dataset and falls back to a local file.
type Loader struct {
	primary     Fetcher
	offlineFile string
	skipPrimary bool
	logger      *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithOfflineOnly skips the primary source.
func WithOfflineOnly(offline bool) LoaderOption {
	return func(l *Loader) {
		l.skipPrimary = offline
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader. primary may be nil, in which case only the
// offline file is read.
func NewLoader(primary Fetcher, offlineFile string, opts ...LoaderOption) *Loader {
	l := &Loader{
		primary:     primary,
		offlineFile: offlineFile,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// OfflineFile returns the fallback file path.
func (l *Loader) OfflineFile() string { return l.offlineFile }

// Load returns the primary dataset, or the offline dataset when the primary
// fails. Both failing yields ErrNoDataset joined with both causes.
func (l *Loader) Load(ctx context.Context) (*Store, error) {
	var primaryErr error
	if l.primary != nil && !l.skipPrimary {
		store, err := l.loadPrimary(ctx)
		if err == nil {
			return store, nil
		}
		primaryErr = fmt.Errorf("primary source: %w", err)
		l.logger.Warn("primary dataset unavailable, using offline file", "error", err, "file", l.offlineFile)
	}

	if ctx.Err() != nil {
		return nil, errors.Join(ErrNoDataset, primaryErr, ctx.Err())
	}

	store, err := l.LoadOffline()
	if err != nil {
		return nil, errors.Join(ErrNoDataset, primaryErr, fmt.Errorf("offline source: %w", err))
	}
	return store, nil
}

// LoadOffline reads only the fallback file.
func (l *Loader) LoadOffline() (*Store, error) {
	stations, err := ReadFile(l.offlineFile)
	if err != nil {
		return nil, err
	}
	return NewStore(stations, SourceOffline)
}

func (l *Loader) loadPrimary(ctx context.Context) (*Store, error) {
	stations, err := l.primary.FetchStations(ctx)
	if err != nil {
		return nil, err
	}
	return NewStore(stations, SourceCDN)
}

// ReadFile decodes a station dataset file.
func ReadFile(path string) ([]models.Station, error) {
	if path == "" {
		return nil, errors.New("no offline file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	stations, err := api.DecodeStations(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return stations, nil
}
