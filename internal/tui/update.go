package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/search"
	"github.com/mobil-koeln/railsearch/internal/session"
)

// Update handles all messages and key events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.searchInput.Width = max(20, msg.Width-14)
		return m, nil

	case datasetResultMsg:
		return m.handleDatasetResult(msg)

	case ReloadMsg:
		return m.handleReload()

	case clearNoticeMsg:
		if msg.id == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Pass remaining messages to textinput when focused
	if m.focus == focusSearch {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleDatasetResult(msg datasetResultMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results
	if msg.seq != m.loadSeq {
		return m, nil
	}

	if msg.err != nil {
		// A failed file reload keeps the dataset already loaded.
		if msg.background && m.ctrl.Ready() {
			return m.setNotice("Reload failed: " + msg.err.Error())
		}
		m.store = nil
		m.ctrl.FailLoad(msg.err)
		m.focusSearch()
		return m, nil
	}

	m.store = msg.store
	matcher := search.NewMatcher(search.BuildIndex(msg.store), m.matcherOpts...)
	m.ctrl.FinishLoad(matcher, msg.store.Source())
	if msg.background {
		return m.setNotice(fmt.Sprintf("Reloaded %d stations from the offline file", msg.store.Len()))
	}
	return m, nil
}

// handleReload re-reads the offline file unless a load is running or the
// active dataset came from the CDN.
func (m Model) handleReload() (tea.Model, tea.Cmd) {
	if m.ctrl.Loading() || (m.ctrl.Ready() && m.ctrl.Source() == dataset.SourceCDN) {
		return m, nil
	}
	m.loadSeq++
	return m, reloadOffline(m.loader, m.loadSeq)
}

func (m Model) setNotice(text string) (Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	return m, clearNoticeAfter(m.noticeSeq)
}

func (m *Model) focusSearch() {
	m.focus = focusSearch
	m.cardCursor = 0
	m.searchInput.Focus()
}

// syncInput mirrors the controller query into the text input after the
// controller cleared it.
func (m *Model) syncInput() {
	if m.searchInput.Value() != m.ctrl.Query() {
		m.searchInput.SetValue(m.ctrl.Query())
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Input is disabled until a dataset is available
	switch m.ctrl.View() {
	case session.ViewLoading:
		if msg.String() == "esc" {
			return m, tea.Quit
		}
		return m, nil
	case session.ViewError:
		return m.handleErrorKeys(msg)
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKeys(msg)
	case focusSelected, focusRecents:
		return m.handleCardKeys(msg)
	}

	return m, nil
}

func (m Model) handleErrorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.loadSeq++
		m.ctrl.BeginLoad()
		return m, loadDataset(m.loader, m.loadSeq)

	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down", "ctrl+n":
		_ = m.ctrl.HandleKey(session.KeyDown)
		return m, nil

	case "up", "ctrl+p":
		_ = m.ctrl.HandleKey(session.KeyUp)
		return m, nil

	case "enter":
		err := m.ctrl.HandleKey(session.KeyEnter)
		m.syncInput()
		if err != nil {
			return m.setNotice("Could not save recent stations: " + err.Error())
		}
		return m, nil

	case "esc":
		if m.ctrl.DropdownVisible() {
			_ = m.ctrl.HandleKey(session.KeyEscape)
			return m, nil
		}
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.ctrl.SetQuery("")
		}
		return m, nil

	case "tab", "shift+tab":
		if panel, ok := m.gridPanel(); ok && !m.ctrl.DropdownVisible() {
			m.focus = panel
			m.cardCursor = 0
			m.searchInput.Blur()
		}
		return m, nil
	}

	// Forward to textinput
	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if v := m.searchInput.Value(); v != before {
		m.ctrl.SetQuery(v)
	}
	return m, cmd
}

func (m Model) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The grid may have changed since focus moved here
	if panel, ok := m.gridPanel(); !ok || panel != m.focus {
		m.focusSearch()
		return m.handleSearchKeys(msg)
	}
	stations := m.gridStations()
	if m.cardCursor >= len(stations) {
		m.cardCursor = len(stations) - 1
	}
	if m.cardCursor < 0 {
		m.cardCursor = 0
	}
	cols := m.gridColumns()

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "shift+tab", "esc", "/":
		m.focusSearch()
		return m, nil

	case "l", "right":
		if m.cardCursor < len(stations)-1 {
			m.cardCursor++
		}
		return m, nil

	case "h", "left":
		if m.cardCursor > 0 {
			m.cardCursor--
		}
		return m, nil

	case "j", "down":
		if m.cardCursor+cols < len(stations) {
			m.cardCursor += cols
		}
		return m, nil

	case "k", "up":
		if m.cardCursor-cols >= 0 {
			m.cardCursor -= cols
		}
		return m, nil

	case "home":
		m.cardCursor = 0
		return m, nil

	case "end":
		m.cardCursor = len(stations) - 1
		return m, nil

	case "x", "delete", "backspace":
		if m.focus != focusSelected {
			return m, nil
		}
		m.ctrl.Remove(stations[m.cardCursor].Code)
		if len(m.ctrl.Selected()) == 0 {
			m.focusSearch()
		} else if m.cardCursor >= len(m.ctrl.Selected()) {
			m.cardCursor--
		}
		return m, nil

	case "enter":
		if m.focus != focusRecents {
			return m, nil
		}
		st := stations[m.cardCursor]
		err := m.ctrl.Select(st)
		m.syncInput()
		m.focus = focusSelected
		m.cardCursor = len(m.ctrl.Selected()) - 1
		for i, s := range m.ctrl.Selected() {
			if s.Code == st.Code {
				m.cardCursor = i
			}
		}
		if err != nil {
			return m.setNotice("Could not save recent stations: " + err.Error())
		}
		return m, nil

	case "D":
		if m.focus != focusRecents {
			return m, nil
		}
		err := m.ctrl.ClearRecents()
		m.focusSearch()
		if err != nil {
			return m.setNotice("Could not clear recent stations: " + err.Error())
		}
		return m.setNotice("Recent stations cleared")
	}

	return m, nil
}
