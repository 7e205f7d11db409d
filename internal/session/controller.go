// Package session holds the state of one interactive search session: the
// query and its ranked results, the dropdown highlight, the selected
// stations and the persisted recents list.
//
// A Controller is driven from a single goroutine, normally the UI loop.
// Storage is reached through the SlotStore port so the controller can be
// tested without a terminal or a database.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/search"
)

// SlotStore is durable storage of named byte slots.
type SlotStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Searcher ranks stations for a query.
type Searcher interface {
	Search(query string, limit int) []search.Result
}

// View is the content shown beneath the dropdown.
type View int

const (
	ViewLoading View = iota
	ViewError
	ViewSelected
	ViewRecent
	ViewEmpty
	// ViewQuery shows only the dropdown.
	ViewQuery
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewSelected:
		return "selected"
	case ViewRecent:
		return "recent"
	case ViewEmpty:
		return "empty"
	case ViewQuery:
		return "query"
	default:
		return "unknown"
	}
}

// Key is a navigation key understood by HandleKey.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for persistence problems.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithLimit sets the result cap passed to the matcher.
func WithLimit(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// Controller owns the session state.
type Controller struct {
	store  SlotStore
	logger *slog.Logger
	limit  int

	matcher Searcher
	source  dataset.Source
	loading bool
	loadErr error

	query     string
	results   []search.Result
	dropdown  bool
	highlight int

	selected []models.Station
	recents  Recents

	listeners    []listener
	nextListener int
}

// New creates a controller in the loading state and reads the recents
// slot once. A missing or corrupt slot yields empty recents.
func New(store SlotStore, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		logger:    slog.Default(),
		limit:     search.DefaultLimit,
		loading:   true,
		highlight: -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.recents = c.readRecents()
	return c
}

func (c *Controller) readRecents() Recents {
	if c.store == nil {
		return nil
	}
	data, err := c.store.Get(RecentsSlot)
	if err != nil {
		c.logger.Debug("no stored recents", "error", err)
		return nil
	}
	recents, err := DecodeRecents(data)
	if err != nil {
		c.logger.Debug("discarding corrupt recents", "error", err)
		return nil
	}
	return recents
}

// BeginLoad enters the loading state, clearing any previous load error.
func (c *Controller) BeginLoad() {
	c.loading = true
	c.loadErr = nil
	c.emit(EventLoad)
}

// FinishLoad installs a matcher for a freshly loaded dataset. An active
// query is re-run against it.
func (c *Controller) FinishLoad(m Searcher, source dataset.Source) {
	c.matcher = m
	c.source = source
	c.loading = false
	c.loadErr = nil
	if c.query != "" {
		c.results = c.run(c.query)
		c.highlight = -1
	}
	c.emit(EventLoad)
}

// FailLoad records a load failure. No dataset is kept.
func (c *Controller) FailLoad(err error) {
	c.matcher = nil
	c.loading = false
	c.loadErr = err
	c.results = nil
	c.highlight = -1
	c.emit(EventLoad)
}

// SetQuery re-runs the search and resets the highlight.
func (c *Controller) SetQuery(q string) {
	c.query = q
	c.results = c.run(q)
	c.highlight = -1
	c.dropdown = strings.TrimSpace(q) != ""
	c.emit(EventQuery)
}

func (c *Controller) run(q string) []search.Result {
	if c.matcher == nil {
		return nil
	}
	return c.matcher.Search(q, c.limit)
}

// MoveDown moves the highlight down, stopping at the last result.
func (c *Controller) MoveDown() {
	if !c.navigable() || c.highlight >= len(c.results)-1 {
		return
	}
	c.highlight++
	c.emit(EventHighlight)
}

// MoveUp moves the highlight up. Moving up from the first result clears it.
func (c *Controller) MoveUp() {
	if !c.navigable() || c.highlight < 0 {
		return
	}
	c.highlight--
	c.emit(EventHighlight)
}

func (c *Controller) navigable() bool {
	return c.dropdown && len(c.results) > 0
}

// Confirm selects the highlighted result. It reports false when nothing is
// highlighted.
func (c *Controller) Confirm() (bool, error) {
	st, ok := c.Highlighted()
	if !ok {
		return false, nil
	}
	return true, c.Select(st)
}

// Dismiss closes the dropdown and clears the highlight. The query is kept.
func (c *Controller) Dismiss() {
	if !c.dropdown && c.highlight == -1 {
		return
	}
	c.dropdown = false
	c.highlight = -1
	c.emit(EventHighlight)
}

// HandleKey applies a navigation key. Keys are ignored while the dropdown
// is closed or empty.
func (c *Controller) HandleKey(k Key) error {
	if !c.navigable() {
		return nil
	}
	switch k {
	case KeyDown:
		c.MoveDown()
	case KeyUp:
		c.MoveUp()
	case KeyEnter:
		_, err := c.Confirm()
		return err
	case KeyEscape:
		c.Dismiss()
	}
	return nil
}

// Select commits a station: it is pushed onto the persisted recents and
// added to the selection, and the query is cleared. State is updated even
// when persisting fails; the error is returned.
func (c *Controller) Select(st models.Station) error {
	c.recents = c.recents.Push(st)
	err := c.persistRecents()

	if !c.IsSelected(st.Code) {
		c.selected = append(c.selected, st)
	}
	c.query = ""
	c.results = nil
	c.dropdown = false
	c.highlight = -1

	c.emit(EventRecents, EventSelection, EventQuery)
	return err
}

// Remove drops a station from the selection. Recents are not touched.
func (c *Controller) Remove(code string) bool {
	for i, s := range c.selected {
		if strings.EqualFold(s.Code, code) {
			c.selected = append(c.selected[:i:i], c.selected[i+1:]...)
			c.emit(EventSelection)
			return true
		}
	}
	return false
}

// ClearRecents empties and persists the recents list.
func (c *Controller) ClearRecents() error {
	c.recents = nil
	err := c.persistRecents()
	c.emit(EventRecents)
	return err
}

func (c *Controller) persistRecents() error {
	if c.store == nil {
		return nil
	}
	data, err := c.recents.Encode()
	if err == nil {
		err = c.store.Set(RecentsSlot, data)
	}
	if err != nil {
		c.logger.Warn("failed to save recent stations", "error", err)
		return fmt.Errorf("save recents: %w", err)
	}
	return nil
}

// View returns the content to show beneath the dropdown.
func (c *Controller) View() View {
	switch {
	case c.loading:
		return ViewLoading
	case c.loadErr != nil:
		return ViewError
	case len(c.selected) > 0:
		return ViewSelected
	case c.hasQuery():
		return ViewQuery
	case len(c.recents) > 0:
		return ViewRecent
	default:
		return ViewEmpty
	}
}

// DropdownVisible reports whether the result dropdown is open.
func (c *Controller) DropdownVisible() bool {
	return c.dropdown && c.hasQuery() && !c.loading && c.loadErr == nil
}

func (c *Controller) hasQuery() bool {
	return strings.TrimSpace(c.query) != ""
}

// Query returns the current query text.
func (c *Controller) Query() string { return c.query }

// Results returns the ranked results for the current query.
func (c *Controller) Results() []search.Result { return c.results }

// Highlight returns the highlighted result index, or -1.
func (c *Controller) Highlight() int { return c.highlight }

// Highlighted returns the highlighted station.
func (c *Controller) Highlighted() (models.Station, bool) {
	if !c.dropdown || c.highlight < 0 || c.highlight >= len(c.results) {
		return models.Station{}, false
	}
	return c.results[c.highlight].Station, true
}

// Selected returns the selected stations in insertion order.
func (c *Controller) Selected() []models.Station {
	return append([]models.Station(nil), c.selected...)
}

// IsSelected reports whether a station with the code is selected.
func (c *Controller) IsSelected(code string) bool {
	for _, s := range c.selected {
		if strings.EqualFold(s.Code, code) {
			return true
		}
	}
	return false
}

// Recents returns the recents list, newest first.
func (c *Controller) Recents() Recents {
	return append(Recents(nil), c.recents...)
}

// Loading reports whether a dataset load is in progress.
func (c *Controller) Loading() bool { return c.loading }

// Err returns the last load error.
func (c *Controller) Err() error { return c.loadErr }

// Source returns the source of the active dataset.
func (c *Controller) Source() dataset.Source { return c.source }

// Ready reports whether a dataset is loaded.
func (c *Controller) Ready() bool { return c.matcher != nil && !c.loading }

// NoDataset reports whether the last load failed for lack of any source.
func (c *Controller) NoDataset() bool { return errors.Is(c.loadErr, dataset.ErrNoDataset) }
