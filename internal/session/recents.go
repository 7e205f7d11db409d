package session

import (
	"encoding/json"
	"strings"

	"github.com/mobil-koeln/railsearch/internal/models"
)

const (
	// RecentsSlot is the storage slot holding the recents list.
	RecentsSlot = "recentStations"

	// MaxRecents bounds the recents list.
	MaxRecents = 10
)

// Recents is a most-recently-used station list, newest first, unique by
// code and never longer than MaxRecents.
type Recents []models.Station

// Push returns a new list with st at the front, any older entry with the
// same code removed, and the oldest entries dropped beyond MaxRecents.
func (r Recents) Push(st models.Station) Recents {
	out := make(Recents, 0, MaxRecents)
	out = append(out, st)
	for _, s := range r {
		if len(out) == MaxRecents {
			break
		}
		if !strings.EqualFold(s.Code, st.Code) {
			out = append(out, s)
		}
	}
	return out
}

// Codes returns the station codes in list order.
func (r Recents) Codes() []string {
	codes := make([]string, len(r))
	for i, s := range r {
		codes[i] = s.Code
	}
	return codes
}

// Encode serializes the list as a JSON array of stations.
func (r Recents) Encode() ([]byte, error) {
	if r == nil {
		r = Recents{}
	}
	return json.Marshal(r)
}

// DecodeRecents parses a stored list. Entries without a code and repeated
// codes are dropped, and the list is cut to MaxRecents.
func DecodeRecents(data []byte) (Recents, error) {
	var raw []models.Station
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(Recents, 0, min(len(raw), MaxRecents))
	seen := make(map[string]bool, len(raw))
	for _, s := range raw {
		key := strings.ToUpper(s.Code)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == MaxRecents {
			break
		}
	}
	return out, nil
}
