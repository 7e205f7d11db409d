// Package dataset holds the immutable station collection and loads it from
// the remote dataset or the local fallback file.
package dataset

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/mobil-koeln/railsearch/internal/models"
)

// Source identifies where a dataset came from. Display only.
type Source string

const (
	SourceCDN     Source = "cdn"
	SourceOffline Source = "offline"
)

// Label returns the human readable form of the source.
func (s Source) Label() string {
	switch s {
	case SourceCDN:
		return "CDN"
	case SourceOffline:
		return "Offline"
	default:
		return "Unknown"
	}
}

// ErrEmptyDataset is returned by NewStore when no record survives validation.
var ErrEmptyDataset = errors.New("dataset contains no valid stations")

// Store is the loaded station collection. It is never modified after
// NewStore returns and may be read from any goroutine.
type Store struct {
	stations []models.Station
	byCode   map[string]int
	source   Source
	skipped  int
}

// NewStore validates stations and builds a store in their original order.
// Invalid records and repeated codes are dropped and counted. A store
// needs at least one valid station.
func NewStore(stations []models.Station, source Source) (*Store, error) {
	s := &Store{
		stations: make([]models.Station, 0, len(stations)),
		byCode:   make(map[string]int, len(stations)),
		source:   source,
	}

	for i := range stations {
		st := stations[i]
		if err := st.Validate(); err != nil {
			slog.Debug("skipping station record", "index", i, "error", err)
			s.skipped++
			continue
		}
		key := strings.ToUpper(st.Code)
		if _, dup := s.byCode[key]; dup {
			slog.Debug("skipping duplicate station code", "index", i, "code", st.Code)
			s.skipped++
			continue
		}
		s.byCode[key] = len(s.stations)
		s.stations = append(s.stations, st)
	}

	if s.skipped > 0 {
		slog.Info("dataset records skipped", "skipped", s.skipped, "kept", len(s.stations))
	}
	if len(s.stations) == 0 {
		return nil, ErrEmptyDataset
	}
	return s, nil
}

// Len returns the number of stations.
func (s *Store) Len() int { return len(s.stations) }

// At returns the station at position i in collection order.
func (s *Store) At(i int) *models.Station { return &s.stations[i] }

// All returns a copy of the stations in collection order.
func (s *Store) All() []models.Station {
	out := make([]models.Station, len(s.stations))
	copy(out, s.stations)
	return out
}

// ByCode looks up a station by code, ignoring case.
func (s *Store) ByCode(code string) (models.Station, bool) {
	i, ok := s.byCode[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return models.Station{}, false
	}
	return s.stations[i], true
}

// Source reports where the dataset came from.
func (s *Store) Source() Source { return s.source }

// Skipped returns the number of records dropped during construction.
func (s *Store) Skipped() int { return s.skipped }
