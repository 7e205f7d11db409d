package output

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ColorMode represents the color output mode
type ColorMode int

const (
	// ColorAuto enables colors if output is a TTY
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever disables colors
	ColorNever
)

// Colors holds the color functions for different output types
type Colors struct {
	Code     func(format string, a ...interface{}) string
	Name     func(format string, a ...interface{}) string
	Regional func(format string, a ...interface{}) string
	Place    func(format string, a ...interface{}) string
	Strong   func(format string, a ...interface{}) string
	Fair     func(format string, a ...interface{}) string
	Weak     func(format string, a ...interface{}) string
	Online   func(format string, a ...interface{}) string
	Offline  func(format string, a ...interface{}) string
	Header   func(format string, a ...interface{}) string
	Muted    func(format string, a ...interface{}) string
}

// NewColors creates a new Colors instance based on the color mode
func NewColors(mode ColorMode) *Colors {
	// Determine if we should use colors
	useColors := false
	switch mode {
	case ColorAlways:
		useColors = true
		color.NoColor = false // Force colors on
	case ColorNever:
		useColors = false
	case ColorAuto:
		useColors = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if !useColors {
		// Return no-op color functions
		noColor := func(format string, a ...interface{}) string {
			if len(a) == 0 {
				return format
			}
			return color.New().Sprintf(format, a...)
		}
		return &Colors{
			Code:     noColor,
			Name:     noColor,
			Regional: noColor,
			Place:    noColor,
			Strong:   noColor,
			Fair:     noColor,
			Weak:     noColor,
			Online:   noColor,
			Offline:  noColor,
			Header:   noColor,
			Muted:    noColor,
		}
	}

	// Create colored functions
	return &Colors{
		Code:     color.New(color.FgCyan, color.Bold).SprintfFunc(),
		Name:     color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Regional: color.New(color.FgMagenta).SprintfFunc(),
		Place:    color.New(color.FgWhite).SprintfFunc(),
		Strong:   color.New(color.FgGreen).SprintfFunc(),
		Fair:     color.New(color.FgYellow).SprintfFunc(),
		Weak:     color.New(color.FgHiBlack).SprintfFunc(),
		Online:   color.New(color.FgGreen).SprintfFunc(),
		Offline:  color.New(color.FgYellow, color.Bold).SprintfFunc(),
		Header:   color.New(color.FgWhite, color.Bold).SprintfFunc(),
		Muted:    color.New(color.FgHiBlack).SprintfFunc(),
	}
}

// FormatScore formats a match score with a color for its quality (fixed
// 4-char width). Scores run from 0 to 3.
func (c *Colors) FormatScore(score float64) string {
	switch {
	case score >= 2:
		return c.Strong("%4.2f", score)
	case score >= 1:
		return c.Fair("%4.2f", score)
	default:
		return c.Weak("%4.2f", score)
	}
}

// FormatSource formats the dataset source label.
func (c *Colors) FormatSource(source string) string {
	if source == "offline" {
		return c.Offline("offline")
	}
	return c.Online(source)
}

// ParseColorMode parses a color mode string
func ParseColorMode(s string) ColorMode {
	switch s {
	case "always":
		return ColorAlways
	case "never":
		return ColorNever
	default:
		return ColorAuto
	}
}
