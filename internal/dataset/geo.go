package dataset

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mobil-koeln/railsearch/internal/models"
)

const earthRadiusKM = 6371.0

// Distance returns the great-circle distance between two points in km.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	dLat := lat2Rad - lat1Rad
	dLon := (lon2 - lon1) * math.Pi / 180

	// Haversine formula
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// ParseCoordinates parses "lat:lon" (a comma also separates).
func ParseCoordinates(s string) (lat, lon float64, err error) {
	latStr, lonStr, ok := strings.Cut(s, ":")
	if !ok {
		latStr, lonStr, ok = strings.Cut(s, ",")
	}
	if !ok {
		return 0, 0, fmt.Errorf("invalid coordinates %q: expected lat:lon", s)
	}
	lat, err = strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, fmt.Errorf("invalid latitude %q", latStr)
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, fmt.Errorf("invalid longitude %q", lonStr)
	}
	return lat, lon, nil
}

// NearbyStation is a station with its distance from a reference point.
type NearbyStation struct {
	Station    models.Station `json:"station"`
	DistanceKM float64        `json:"distanceKm"`
}

// Nearby returns up to limit stations with coordinates, closest first.
// A positive radiusKM excludes stations farther away.
func (s *Store) Nearby(lat, lon, radiusKM float64, limit int) []NearbyStation {
	var out []NearbyStation
	for i := range s.stations {
		st := &s.stations[i]
		sLat, sLon, ok := st.Coordinates()
		if !ok {
			continue
		}
		d := Distance(lat, lon, sLat, sLon)
		if radiusKM > 0 && d > radiusKM {
			continue
		}
		out = append(out, NearbyStation{Station: *st, DistanceKM: d})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKM < out[j].DistanceKM
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
