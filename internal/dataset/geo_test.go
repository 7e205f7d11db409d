package dataset

import (
	"math"
	"testing"

	"github.com/mobil-koeln/railsearch/internal/testutil"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"same point", 28.6428, 77.2191, 28.6428, 77.2191, 0},
		{"new delhi to mumbai central", 28.6428, 77.2191, 18.9690, 72.8194, 1165},
		{"new delhi to ghaziabad", 28.6428, 77.2191, 28.6505, 77.4427, 21.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.want*0.02+0.01 {
				t.Errorf("Distance() = %.2f, want about %.2f", got, tt.want)
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in       string
		lat, lon float64
		wantErr  bool
	}{
		{"28.6:77.2", 28.6, 77.2, false},
		{"28.6, 77.2", 28.6, 77.2, false},
		{"-33.9:151.2", -33.9, 151.2, false},
		{"28.6", 0, 0, true},
		{"abc:77", 0, 0, true},
		{"95:77", 0, 0, true},
		{"28:190", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinates(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && (lat != tt.lat || lon != tt.lon) {
				t.Errorf("ParseCoordinates(%q) = %v, %v", tt.in, lat, lon)
			}
		})
	}
}

func TestStore_Nearby(t *testing.T) {
	store, err := NewStore(testutil.Stations(t), SourceCDN)
	testutil.AssertNil(t, err)

	// Connaught Place, New Delhi.
	got := store.Nearby(28.6315, 77.2167, 0, 3)
	testutil.AssertLen(t, got, 3)
	testutil.AssertEqual(t, got[0].Station.Code, "NDLS")
	testutil.AssertEqual(t, got[1].Station.Code, "GZB")
	testutil.AssertTrue(t, got[0].DistanceKM < got[1].DistanceKM)

	// Stations without coordinates never appear.
	for _, n := range store.Nearby(20, 78, 0, 0) {
		testutil.AssertTrue(t, n.Station.HasCoordinates())
	}

	testutil.AssertLen(t, store.Nearby(28.6315, 77.2167, 5, 10), 1)
}
