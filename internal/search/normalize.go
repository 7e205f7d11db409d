package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares text for comparison: NFC composition, Unicode case
// folding and single-space separated words. Scripts without case are left
// as is.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	// A Caser carries state and must not be shared between goroutines.
	s = cases.Fold().String(s)
	return strings.Join(strings.Fields(s), " ")
}
