package testutil

import (
	"slices"
	"strings"
	"testing"

	"github.com/mobil-koeln/railsearch/internal/models"
)

// AssertEqual checks if two values are equal
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// AssertNil checks if error is nil
func AssertNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError checks if error is not nil
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}

// AssertContains checks if string contains substring
func AssertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
}

// AssertNotContains checks if string does not contain substring
func AssertNotContains(t *testing.T, got, notWant string) {
	t.Helper()
	if strings.Contains(got, notWant) {
		t.Errorf("got %q, want it to not contain %q", got, notWant)
	}
}

// AssertTrue checks if condition is true
func AssertTrue(t *testing.T, condition bool) {
	t.Helper()
	if !condition {
		t.Error("expected true but got false")
	}
}

// AssertFalse checks if condition is false
func AssertFalse(t *testing.T, condition bool) {
	t.Helper()
	if condition {
		t.Error("expected false but got true")
	}
}

// AssertLen checks if slice has expected length
func AssertLen[T any](t *testing.T, items []T, want int) {
	t.Helper()
	got := len(items)
	if got != want {
		t.Errorf("got length %d, want %d", got, want)
	}
}

// Codes returns the station codes in order.
func Codes(stations []models.Station) []string {
	codes := make([]string, len(stations))
	for i, s := range stations {
		codes[i] = s.Code
	}
	return codes
}

// AssertCodes checks that stations carry exactly the given codes, in order.
func AssertCodes(t *testing.T, stations []models.Station, want ...string) {
	t.Helper()
	got := Codes(stations)
	if !slices.Equal(got, want) {
		t.Errorf("got codes %v, want %v", got, want)
	}
}

// AssertHasCode checks that a station with the code is present.
func AssertHasCode(t *testing.T, stations []models.Station, code string) {
	t.Helper()
	if !slices.Contains(Codes(stations), code) {
		t.Errorf("codes %v do not contain %q", Codes(stations), code)
	}
}
