package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/search"
	"github.com/mobil-koeln/railsearch/internal/session"
)

type focusPanel int

const (
	focusSearch focusPanel = iota
	focusSelected
	focusRecents
)

// Loader loads the station dataset. *dataset.Loader implements it.
type Loader interface {
	Load(ctx context.Context) (*dataset.Store, error)
	LoadOffline() (*dataset.Store, error)
}

// Model is the root Bubble Tea model for the TUI.
type Model struct {
	ctrl        *session.Controller
	loader      Loader
	matcherOpts []search.Option
	width       int
	height      int

	searchInput textinput.Model
	focus       focusPanel

	// Card grid below the search bar (selected or recent stations)
	cardCursor int

	// Dataset
	store   *dataset.Store
	loadSeq int

	// Transient status line message
	notice    string
	noticeSeq int
}

// New creates a new TUI model. The controller is expected to be in its
// initial loading state; Init starts the dataset load.
func New(ctrl *session.Controller, loader Loader, opts ...search.Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Station name, code or regional name..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		ctrl:        ctrl,
		loader:      loader,
		matcherOpts: opts,
		searchInput: ti,
		focus:       focusSearch,
		loadSeq:     1,
	}
}

// Init returns the initial commands (textinput blink and dataset load).
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, loadDataset(m.loader, m.loadSeq))
}

// gridPanel returns the card grid shown for the current view, if any.
func (m Model) gridPanel() (focusPanel, bool) {
	switch m.ctrl.View() {
	case session.ViewSelected:
		return focusSelected, true
	case session.ViewRecent:
		return focusRecents, true
	}
	return focusSearch, false
}

// gridStations returns the stations of the focused card grid.
func (m Model) gridStations() []models.Station {
	switch m.focus {
	case focusSelected:
		return m.ctrl.Selected()
	case focusRecents:
		return m.ctrl.Recents()
	}
	return nil
}

// gridColumns returns how many cards fit side by side.
func (m Model) gridColumns() int {
	cols := (m.width - 2) / (cardWidth + 2)
	if cols < 1 {
		return 1
	}
	return cols
}
