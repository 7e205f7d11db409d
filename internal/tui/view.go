package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/output"
	"github.com/mobil-koeln/railsearch/internal/session"
)

// View renders the entire TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Layout: header + search bar + body + status bar
	header := m.renderHeader()
	searchBar := m.renderSearchBar()
	statusBar := m.renderStatusBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(searchBar) - lipgloss.Height(statusBar)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var parts []string
	if m.ctrl.DropdownVisible() {
		dropdown := m.renderDropdown(m.width-4, min(bodyHeight-2, 12))
		parts = append(parts, stylePanelFocused.Width(m.width-2).Render(dropdown))
	}
	if body := m.renderBody(); body != "" {
		parts = append(parts, body)
	}
	body := lipgloss.NewStyle().
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(strings.Join(parts, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, body, statusBar)
}

// renderHeader renders the brand name and the dataset source badge.
func (m Model) renderHeader() string {
	title := styleLogo.Render("railsearch") + styleMuted.Render("  Indian railway stations")
	if m.ctrl.Ready() {
		title += "  " + sourceBadge(m.ctrl.Source())
		if m.store != nil {
			title += styleMuted.Render(fmt.Sprintf(" %d stations", m.store.Len()))
		}
	}
	return " " + title
}

// renderSearchBar renders the search input at the top.
func (m Model) renderSearchBar() string {
	border := stylePanelNormal
	if m.focus == focusSearch {
		border = stylePanelFocused
	}

	label := styleHeader.Render("Search: ")
	input := m.searchInput.View()
	if !m.ctrl.Ready() {
		input = styleMuted.Render(m.searchInput.Placeholder)
	}

	return border.Width(m.width - 2).Render(label + input)
}

// renderBody renders the content beneath the dropdown for the current view.
func (m Model) renderBody() string {
	switch m.ctrl.View() {
	case session.ViewLoading:
		return styleLoading.Render(" Loading station data...")

	case session.ViewError:
		var b strings.Builder
		b.WriteString(styleError.Render(" Could not load station data"))
		if m.ctrl.NoDataset() {
			b.WriteString("\n" + styleMuted.Render(" Neither the station service nor the offline file is available."))
		}
		for _, line := range strings.Split(m.ctrl.Err().Error(), "\n") {
			b.WriteString("\n" + styleError.Render("   "+line))
		}
		b.WriteString("\n\n" + styleMuted.Render(" Press r to retry or q to quit."))
		return b.String()

	case session.ViewSelected:
		return m.renderCardPanel("SELECTED", m.ctrl.Selected(), focusSelected)

	case session.ViewRecent:
		return m.renderCardPanel("RECENT STATIONS", m.ctrl.Recents(), focusRecents)

	case session.ViewEmpty:
		return styleMuted.Render(" Type a station name, code or regional name to search.")
	}

	// ViewQuery: only the dropdown is shown
	return ""
}

// renderCardPanel renders a titled card grid.
func (m Model) renderCardPanel(title string, stations []models.Station, panel focusPanel) string {
	focused := m.focus == panel
	heading := styleHeader.Render(" " + title)
	if focused {
		heading = styleSelected.Render(" " + title)
	}
	return heading + "\n" + renderGrid(stations, m.gridColumns(), m.cardCursor, focused)
}

// renderDropdown renders the ranked result list with the highlight.
func (m Model) renderDropdown(width, height int) string {
	results := m.ctrl.Results()
	if len(results) == 0 {
		return styleMuted.Render(" No stations found")
	}

	var b strings.Builder
	label := fmt.Sprintf("%d result", len(results))
	if len(results) != 1 {
		label += "s"
	}
	b.WriteString(styleMuted.Render(label))

	maxVisible := height - 1 // account for the label
	if maxVisible < 1 {
		maxVisible = 1
	}
	highlight := m.ctrl.Highlight()
	start, end := visibleRange(max(highlight, 0), len(results), maxVisible)

	nameWidth := min(26, max(10, width/3))
	regionalWidth := min(20, max(8, width/4))
	for i := start; i < end; i++ {
		r := results[i]
		st := r.Station
		line := fmt.Sprintf("%s %s %s %s",
			styleCode.Render(fmt.Sprintf("%-5s", st.Code)),
			styleName.Render(output.PadRight(output.Truncate(st.Name, nameWidth), nameWidth)),
			styleRegional.Render(output.PadRight(output.Truncate(output.DisplayRegional(r), regionalWidth), regionalWidth)),
			styleMuted.Render(output.Place(&st)),
		)
		b.WriteString("\n")
		if i == highlight {
			b.WriteString(styleSelected.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
	}

	return b.String()
}

// renderStatusBar renders context-aware keyboard hints at the bottom.
func (m Model) renderStatusBar() string {
	var hints string
	switch {
	case m.ctrl.View() == session.ViewLoading:
		hints = "Esc:quit"
	case m.ctrl.View() == session.ViewError:
		hints = "r:retry  q:quit"
	case m.focus == focusSelected:
		hints = "h/j/k/l:move  x:remove  Tab:search  q:quit"
	case m.focus == focusRecents:
		hints = "h/j/k/l:move  Enter:select  D:clear  Tab:search  q:quit"
	case m.ctrl.DropdownVisible():
		hints = "↑/↓:navigate  Enter:select  Esc:close  Ctrl+C:quit"
	default:
		hints = "Type to search  Tab:cards  Esc:clear  Ctrl+C:quit"
	}

	if m.notice != "" {
		hints = styleNotice.Render(m.notice) + "  " + hints
	}
	return styleStatusBar.Width(m.width).Render(" " + hints)
}

// visibleRange calculates the start and end indices for a scrollable list.
func visibleRange(cursor, total, maxVisible int) (int, int) {
	if total <= maxVisible {
		return 0, total
	}

	start := cursor - maxVisible/2
	if start < 0 {
		start = 0
	}
	end := start + maxVisible
	if end > total {
		end = total
		start = end - maxVisible
		if start < 0 {
			start = 0
		}
	}
	return start, end
}
