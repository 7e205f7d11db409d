package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/railsearch/internal/dataset"
)

// Colors matching the output/colors.go scheme
var (
	colorCyan    = lipgloss.Color("6")  // Cyan - codes, focus
	colorYellow  = lipgloss.Color("3")  // Yellow - offline source, loading
	colorRed     = lipgloss.Color("1")  // Red - errors
	colorGreen   = lipgloss.Color("2")  // Green - online source
	colorMagenta = lipgloss.Color("5")  // Magenta - regional names
	colorWhite   = lipgloss.Color("15") // White - names, text
	colorGray    = lipgloss.Color("8")  // Gray - muted text
)

// Text styles
var (
	styleCode     = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleName     = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	styleRegional = lipgloss.NewStyle().Foreground(colorMagenta)
	styleMuted    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader   = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// Panel border styles
var (
	stylePanelFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan)

	stylePanelNormal = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorGray)
)

// Station cards
var (
	styleCardFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorCyan).
				Padding(0, 1)

	styleCardNormal = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(colorGray).
			Padding(0, 1)
)

// Highlighted dropdown row
var styleSelected = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Status bar at the bottom
var styleStatusBar = lipgloss.NewStyle().
	Foreground(colorGray).
	Background(lipgloss.Color("0"))

// Notice shown in the status bar
var styleNotice = lipgloss.NewStyle().Foreground(colorYellow)

// Loading indicator
var styleLoading = lipgloss.NewStyle().Foreground(colorYellow).Italic(true)

// Error text
var styleError = lipgloss.NewStyle().Foreground(colorRed)

// Logo/brand style
var styleLogo = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)

// Source badges
var (
	styleBadgeOnline = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(colorGreen).
				Bold(true)

	styleBadgeOffline = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(colorYellow).
				Bold(true)
)

// sourceBadge renders the dataset source as a reverse-video label.
func sourceBadge(source dataset.Source) string {
	label := " " + source.Label() + " "
	if source == dataset.SourceOffline {
		return styleBadgeOffline.Render(label)
	}
	return styleBadgeOnline.Render(label)
}
