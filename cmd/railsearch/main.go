package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mobil-koeln/railsearch/internal/api"
	"github.com/mobil-koeln/railsearch/internal/config"
	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/output"
	"github.com/mobil-koeln/railsearch/internal/search"
	"github.com/mobil-koeln/railsearch/internal/session"
	"github.com/mobil-koeln/railsearch/internal/storage"
	"github.com/mobil-koeln/railsearch/internal/tui"
	"github.com/mobil-koeln/railsearch/internal/watch"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "railsearch",
	Short: "Fuzzy multilingual search over Indian railway stations",
	Long: `railsearch finds Indian railway stations by name, station code or
regional-script name, tolerating typos.

Features:
  - Fuzzy search across Latin names, codes and 11 regional scripts
  - Operator queries: =exact 'include ^prefix suffix$ !exclude a | b
  - Station cards with district, state, train count and location
  - Nearby stations by great-circle distance
  - Recently selected stations, persisted between runs
  - Offline fallback dataset when the CDN is unreachable
  - JSON output for scripting

Quick Start:
  1. Launch TUI:               railsearch (or railsearch tui)
  2. Search for a station:     railsearch search "new delhi"
  3. Show a station:           railsearch show NDLS
  4. Remember a station:       railsearch select NDLS
  5. List recent stations:     railsearch recent
  6. Find nearby stations:     railsearch nearby 28.64:77.22`,
	Version:           version,
	PersistentPreRunE: setup,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagJSON        bool
	flagColor       string
	flagNoCache     bool
	flagOffline     bool
	flagDataURL     string
	flagOfflineFile string
	flagDB          string
	flagVerbose     bool
)

// Search flags
var (
	flagLimit     int
	flagThreshold float64
	flagLiteral   bool
	flagSelect    int
)

// Other command flags
var (
	flagWatch       bool
	flagClear       bool
	flagNearbyLimit int
	flagRadius      float64
)

// cfg is resolved once per invocation by setup.
var cfg *config.Config

func init() {
	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(selectCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(tuiCmd)

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto", "Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Disable dataset caching")
	rootCmd.PersistentFlags().BoolVar(&flagOffline, "offline", false, "Use the offline dataset file only")
	rootCmd.PersistentFlags().StringVar(&flagDataURL, "data-url", "", "Dataset URL (default "+api.DefaultDatasetURL+")")
	rootCmd.PersistentFlags().StringVar(&flagOfflineFile, "offline-file", "", "Offline dataset file (default "+config.DefaultOfflineFile+")")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Recent stations database file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// TUI flags
	rootCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Reload when the offline dataset file changes")
	tuiCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "Reload when the offline dataset file changes")

	// Search-specific flags
	searchCmd.Flags().IntVarP(&flagLimit, "limit", "n", 0, "Maximum number of results (default 50)")
	searchCmd.Flags().Float64Var(&flagThreshold, "threshold", 0, "Match threshold between 0 (exact) and 1 (anything) (default 0.4)")
	searchCmd.Flags().BoolVar(&flagLiteral, "literal", false, "Plain substring matching, no typo tolerance")
	searchCmd.Flags().IntVar(&flagSelect, "select", 0, "Save the N-th result to recent stations")

	// Recent-specific flags
	recentCmd.Flags().BoolVar(&flagClear, "clear", false, "Forget all recent stations")

	// Nearby-specific flags
	nearbyCmd.Flags().IntVarP(&flagNearbyLimit, "limit", "n", 10, "Maximum number of stations")
	nearbyCmd.Flags().Float64Var(&flagRadius, "radius", 0, "Only stations within this many km (0 for no limit)")
}

// setup resolves configuration and installs the default logger. Flags
// override environment values.
func setup(cmd *cobra.Command, args []string) error {
	cfg = config.Load()
	flags := cmd.Flags()

	if flags.Changed("color") {
		cfg.Color = flagColor
	}
	if flags.Changed("no-cache") {
		cfg.NoCache = flagNoCache
	}
	if flags.Changed("offline") {
		cfg.Offline = flagOffline
	}
	if flagDataURL != "" {
		cfg.DataURL = flagDataURL
	}
	if flagOfflineFile != "" {
		cfg.OfflineFile = flagOfflineFile
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}
	if cmd.Name() == "search" && flags.Changed("limit") {
		cfg.ResultLimit = flagLimit
	}
	if flags.Changed("threshold") {
		if flagThreshold < 0 || flagThreshold > 1 {
			return fmt.Errorf("--threshold must be between 0 and 1, got %g", flagThreshold)
		}
		cfg.Threshold = flagThreshold
	}

	setupLogger(os.Stderr, cfg.Verbose)
	return nil
}

func setupLogger(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// createClient creates a dataset client with common options
func createClient() (*api.Client, error) {
	opts := []api.ClientOption{
		api.WithDatasetURL(cfg.DataURL),
		api.WithTimeout(cfg.HTTPTimeout),
	}

	// Enable caching unless disabled
	if !cfg.NoCache {
		opts = append(opts, api.WithDefaultCache(cfg.CacheDir, cfg.CacheTTL))
	}

	return api.NewClient(opts...)
}

// createLoader creates a dataset loader with the offline fallback
func createLoader() (*dataset.Loader, error) {
	client, err := createClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset client: %w", err)
	}
	return dataset.NewLoader(client, cfg.OfflineFile,
		dataset.WithOfflineOnly(cfg.Offline),
		dataset.WithLogger(slog.Default()),
	), nil
}

// loadStore loads the dataset, falling back to the offline file
func loadStore(ctx context.Context) (*dataset.Store, error) {
	loader, err := createLoader()
	if err != nil {
		return nil, err
	}
	store, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("dataset loaded", "source", store.Source(), "stations", store.Len(), "skipped", store.Skipped())
	return store, nil
}

// matcherOptions returns the matcher options for the configuration
func matcherOptions() []search.Option {
	opts := []search.Option{search.WithThreshold(cfg.Threshold)}
	if flagLiteral {
		opts = append(opts, search.WithMode(search.ModeSubstring))
	}
	return opts
}

// openSession opens the recents database and a controller on top of it.
// The returned close function releases the database.
func openSession() (*session.Controller, func(), error) {
	db, err := storage.OpenBolt(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open recent stations: %w", err)
	}
	ctrl := session.New(db, session.WithLogger(slog.Default()), session.WithLimit(cfg.ResultLimit))
	return ctrl, func() { _ = db.Close() }, nil
}

// getColors returns the colors for the configured color mode
func getColors() *output.Colors {
	return output.NewColors(output.ParseColorMode(cfg.Color))
}

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search for stations",
	Long: `Search for stations by name, station code or regional-script name.
Typos are tolerated; results are ranked by match quality.

Query operators (any operator switches to extended syntax):
  =term    field equals term
  'term    field contains term
  ^term    field starts with term
  term$    field ends with term
  !term    exclude stations containing term
  a | b    either side matches

Examples:
  railsearch search "new delhi"
  railsearch search gziabad
  railsearch search "चेन्नई"
  railsearch search "^mumbai !central"
  railsearch search ndls --select 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var showCmd = &cobra.Command{
	Use:   "show <code>",
	Short: "Show station details",
	Long: `Show every known detail of a station, including its names in
regional scripts.

Example:
  railsearch show NDLS`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var selectCmd = &cobra.Command{
	Use:   "select <code>",
	Short: "Save a station to recent stations",
	Long: `Save a station to the recent stations list, the same way choosing it in
the TUI does. The list keeps the 10 most recent stations.

Example:
  railsearch select BCT`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

var recentCmd = &cobra.Command{
	Use:   "recent [filter]",
	Short: "List recent stations",
	Long: `List recently selected stations, newest first. An optional filter
narrows the list by fuzzy matching code, name, district and state.

Examples:
  railsearch recent
  railsearch recent mum
  railsearch recent --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecent,
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby <lat>:<lon>",
	Short: "Find stations near coordinates",
	Long: `Find stations with known coordinates, closest first.

Examples:
  railsearch nearby 28.6139:77.2090
  railsearch nearby 19.07:72.88 --radius 25 --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runNearby,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive full-screen TUI",
	Long: `Launch an interactive full-screen terminal UI with search-as-you-type,
selected station cards and recent stations.

Keyboard:
  Up/Down      Move through results
  Enter        Select the highlighted station
  Esc          Close results, then clear the query
  Tab          Switch between search and station cards
  h/j/k/l      Move between cards
  x            Remove a selected station
  D            Clear recent stations
  r            Retry after a load error
  Ctrl+C       Quit`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !output.IsInteractive(os.Stdout) {
		return errors.New("the TUI needs a terminal; try 'railsearch search <query>'")
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	if cfg.Verbose {
		f, err := tea.LogToFile("railsearch-debug.log", "railsearch")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() { _ = f.Close() }()
		setupLogger(f, true)
	} else {
		setupLogger(io.Discard, false)
	}

	loader, err := createLoader()
	if err != nil {
		return err
	}
	ctrl, closeDB, err := openSession()
	if err != nil {
		return err
	}
	defer closeDB()

	model := tui.New(ctrl, loader, matcherOptions()...)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if flagWatch {
		w, err := watch.New(loader.OfflineFile())
		if err != nil {
			return fmt.Errorf("failed to watch offline file: %w", err)
		}
		defer func() { _ = w.Stop() }()
		if err := w.Start(func(path string) { p.Send(tui.ReloadMsg{Path: path}) }); err != nil {
			return fmt.Errorf("failed to watch offline file: %w", err)
		}
	}

	_, err = p.Run()
	return err
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()
	query := strings.Join(args, " ")

	store, err := loadStore(ctx)
	if err != nil {
		return err
	}

	matcher := search.NewMatcher(search.BuildIndex(store), matcherOptions()...)
	results := matcher.Search(query, cfg.ResultLimit)

	// Commit the chosen result before printing
	var saved *models.Station
	if flagSelect != 0 {
		if flagSelect < 1 || flagSelect > len(results) {
			return fmt.Errorf("--select %d: query returned %d results", flagSelect, len(results))
		}
		st := results[flagSelect-1].Station
		if err := commitStation(st); err != nil {
			return err
		}
		saved = &st
	}

	// JSON output
	if flagJSON {
		return output.WriteJSON(os.Stdout, output.ResultsJSON(results))
	}

	// Text output with colors
	output.RenderResults(os.Stdout, query, results, output.TableOptions{
		Colors:    getColors(),
		ShowMatch: true,
		Source:    string(store.Source()),
	})
	if saved != nil {
		_, _ = fmt.Fprintf(os.Stdout, "\nSaved %s (%s) to recent stations.\n", saved.Code, saved.Name)
	}

	return nil
}

// lookupStation loads the dataset and finds a station by code
func lookupStation(ctx context.Context, code string) (models.Station, dataset.Source, error) {
	store, err := loadStore(ctx)
	if err != nil {
		return models.Station{}, "", err
	}
	st, ok := store.ByCode(code)
	if !ok {
		return models.Station{}, "", fmt.Errorf("station %q not found", strings.ToUpper(strings.TrimSpace(code)))
	}
	return st, store.Source(), nil
}

// commitStation saves a station to recent stations
func commitStation(st models.Station) error {
	ctrl, closeDB, err := openSession()
	if err != nil {
		return err
	}
	defer closeDB()
	return ctrl.Select(st)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	st, source, err := lookupStation(ctx, args[0])
	if err != nil {
		return err
	}

	// JSON output
	if flagJSON {
		return output.WriteJSON(os.Stdout, st)
	}

	output.RenderStationCard(os.Stdout, st, output.TableOptions{
		Colors: getColors(),
		Source: string(source),
	})
	return nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	st, _, err := lookupStation(ctx, args[0])
	if err != nil {
		return err
	}
	if err := commitStation(st); err != nil {
		return err
	}

	// JSON output
	if flagJSON {
		return output.WriteJSON(os.Stdout, st)
	}

	colors := getColors()
	_, _ = fmt.Fprintf(os.Stdout, "Saved %s (%s) to recent stations.\n", colors.Code(st.Code), colors.Name(st.Name))
	return nil
}

// recentsSource adapts recents to fuzzy.Source.
type recentsSource session.Recents

func (r recentsSource) String(i int) string {
	st := r[i]
	return st.Code + " " + st.Name + " " + st.District + " " + st.State
}

func (r recentsSource) Len() int { return len(r) }

// filterRecents keeps the recents matching filter, best match first
func filterRecents(recents session.Recents, filter string) []models.Station {
	matches := fuzzy.FindFrom(filter, recentsSource(recents))
	out := make([]models.Station, 0, len(matches))
	for _, match := range matches {
		out = append(out, recents[match.Index])
	}
	return out
}

func runRecent(cmd *cobra.Command, args []string) error {
	ctrl, closeDB, err := openSession()
	if err != nil {
		return err
	}
	defer closeDB()

	if flagClear {
		if err := ctrl.ClearRecents(); err != nil {
			return err
		}
		if !flagJSON {
			_, _ = fmt.Fprintln(os.Stdout, "Recent stations cleared.")
			return nil
		}
	}

	stations := []models.Station(ctrl.Recents())
	title := "Recent stations"
	if len(args) == 1 {
		stations = filterRecents(ctrl.Recents(), args[0])
		title = fmt.Sprintf("Recent stations matching %q", args[0])
	}

	// JSON output
	if flagJSON {
		if stations == nil {
			stations = []models.Station{}
		}
		return output.WriteJSON(os.Stdout, stations)
	}

	output.RenderStations(os.Stdout, title, stations, output.TableOptions{
		Colors: getColors(),
	})
	return nil
}

func runNearby(cmd *cobra.Command, args []string) error {
	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	// Parse coordinates (format: lat:lon)
	lat, lon, err := dataset.ParseCoordinates(args[0])
	if err != nil {
		return fmt.Errorf("coordinates must be in format LAT:LON (e.g., 28.6139:77.2090): %w", err)
	}

	store, err := loadStore(ctx)
	if err != nil {
		return err
	}
	nearby := store.Nearby(lat, lon, flagRadius, flagNearbyLimit)

	// JSON output
	if flagJSON {
		if nearby == nil {
			nearby = []dataset.NearbyStation{}
		}
		return output.WriteJSON(os.Stdout, nearby)
	}

	output.RenderNearby(os.Stdout, nearby, output.TableOptions{
		Colors: getColors(),
	})
	return nil
}
