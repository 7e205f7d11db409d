package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/session"
	"github.com/mobil-koeln/railsearch/internal/storage"
	"github.com/mobil-koeln/railsearch/internal/testutil"
)

func TestModel_View_NoSize(t *testing.T) {
	m := New(session.New(storage.NewMemoryStore()), &fakeLoader{})

	testutil.AssertEqual(t, m.View(), "Loading...")
}

func TestModel_View_Loading(t *testing.T) {
	m := newTestModel(t, &fakeLoader{}, nil)

	output := m.View()
	testutil.AssertContains(t, output, "railsearch")
	testutil.AssertContains(t, output, "Loading station data")
	testutil.AssertContains(t, output, "Esc:quit")
	testutil.AssertNotContains(t, output, "CDN")
}

func TestModel_View_Error(t *testing.T) {
	loader := &fakeLoader{err: errors.Join(dataset.ErrNoDataset, errors.New("open data/stationupdated.json: no such file"))}
	m := newTestModel(t, loader, nil)
	m = runCmd(t, m, loadDataset(loader, m.loadSeq))

	output := m.View()
	testutil.AssertContains(t, output, "Could not load station data")
	testutil.AssertContains(t, output, "Neither the station service nor the offline file")
	testutil.AssertContains(t, output, "no such file")
	testutil.AssertContains(t, output, "r:retry")
}

func TestModel_View_ErrorWithoutNoDataset(t *testing.T) {
	loader := &fakeLoader{err: errors.New("boom")}
	m := newTestModel(t, loader, nil)
	m = runCmd(t, m, loadDataset(loader, m.loadSeq))

	output := m.View()
	testutil.AssertContains(t, output, "boom")
	testutil.AssertNotContains(t, output, "Neither")
}

func TestModel_View_Empty(t *testing.T) {
	m, _ := loadedModel(t)

	output := m.View()
	testutil.AssertContains(t, output, "CDN")
	testutil.AssertContains(t, output, "14 stations")
	testutil.AssertContains(t, output, "Type a station name, code or regional name")
}

func TestModel_View_OfflineBadge(t *testing.T) {
	loader := &fakeLoader{store: newStore(t, dataset.SourceOffline)}
	m := newTestModel(t, loader, nil)
	m = runCmd(t, m, loadDataset(loader, m.loadSeq))

	testutil.AssertContains(t, m.renderHeader(), "Offline")
}

func TestModel_View_Dropdown(t *testing.T) {
	m, _ := loadedModel(t)
	m = typeText(m, "delhi")
	m, _ = press(m, tea.KeyDown)

	output := m.View()
	testutil.AssertContains(t, output, "results")
	testutil.AssertContains(t, output, "> ")
	testutil.AssertContains(t, output, "NDLS")
	testutil.AssertContains(t, output, "New Delhi")
	testutil.AssertContains(t, output, "नई दिल्ली")
	testutil.AssertContains(t, output, "Enter:select")
	// Nothing is shown under the dropdown while a query is active
	testutil.AssertNotContains(t, output, "Type a station name")
}

func TestModel_View_NoResults(t *testing.T) {
	m, _ := loadedModel(t)
	m = typeText(m, "qqqqqqqq")

	testutil.AssertContains(t, m.View(), "No stations found")
}

func TestModel_View_Selected(t *testing.T) {
	m, _ := loadedModel(t)
	m = selectCodes(t, m, "NDLS", "MAS")

	output := m.View()
	testutil.AssertContains(t, output, "SELECTED")
	testutil.AssertContains(t, output, "New Delhi")
	testutil.AssertContains(t, output, "MGR Chennai Central")
	testutil.AssertContains(t, output, "389 trains")
	testutil.AssertNotContains(t, output, "RECENT STATIONS")
}

func TestModel_View_Recents(t *testing.T) {
	loader := &fakeLoader{store: newStore(t, dataset.SourceCDN)}
	m := newTestModel(t, loader, storedRecents(t, "PUNE", "SC"))
	m = runCmd(t, m, loadDataset(loader, m.loadSeq))

	output := m.View()
	testutil.AssertContains(t, output, "RECENT STATIONS")
	testutil.AssertContains(t, output, "Pune Jn")
	testutil.AssertContains(t, output, "Secunderabad Jn")
}

func TestModel_View_FitsWindow(t *testing.T) {
	m, _ := loadedModel(t)
	m = selectCodes(t, m, "NDLS", "BCT", "GZB", "HWH", "MAS", "SBC", "ADI", "SC", "ERS", "ASR")

	testutil.AssertEqual(t, lipgloss.Height(m.View()), m.height)
}

func TestRenderCard(t *testing.T) {
	stations := testutil.Stations(t)

	card := renderCard(stations[0], false)
	testutil.AssertContains(t, card, "New Delhi")
	testutil.AssertContains(t, card, "NDLS")
	testutil.AssertContains(t, card, "नई दिल्ली")
	testutil.AssertContains(t, card, "New Delhi, Delhi")
	testutil.AssertContains(t, card, "389 trains")
	testutil.AssertEqual(t, lipgloss.Width(card), cardWidth+2)

	// Train count "0" is not displayed
	hwh := renderCard(stations[3], true)
	testutil.AssertContains(t, hwh, "HWH")
	testutil.AssertNotContains(t, hwh, "trains")
}

func TestRenderGrid(t *testing.T) {
	stations := testutil.Stations(t)[:5]

	grid := renderGrid(stations, 2, 0, true)
	for _, st := range stations {
		testutil.AssertContains(t, grid, st.Code)
	}

	// Three rows of cards, each at least three lines tall
	testutil.AssertTrue(t, lipgloss.Height(grid) >= 3*3)
	testutil.AssertTrue(t, lipgloss.Width(grid) <= 2*(cardWidth+2))
}

func TestRenderStatusBar(t *testing.T) {
	m, _ := loadedModel(t)

	testutil.AssertContains(t, m.renderStatusBar(), "Type to search")

	m, _ = m.setNotice("Recent stations cleared")
	bar := m.renderStatusBar()
	testutil.AssertContains(t, bar, "Recent stations cleared")
	testutil.AssertTrue(t, strings.Index(bar, "cleared") < strings.Index(bar, "Type to search"))
}

func TestRenderStatusBar_DifferentFocus(t *testing.T) {
	m, _ := loadedModel(t)
	m = selectCodes(t, m, "PUNE")

	m.focus = focusSelected
	testutil.AssertContains(t, m.renderStatusBar(), "x:remove")

	m.focus = focusRecents
	testutil.AssertContains(t, m.renderStatusBar(), "D:clear")
}
