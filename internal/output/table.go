package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/mobil-koeln/railsearch/internal/dataset"
	"github.com/mobil-koeln/railsearch/internal/models"
	"github.com/mobil-koeln/railsearch/internal/search"
)

const (
	nameWidth     = 26
	regionalWidth = 18
)

// TableOptions configures the table output
type TableOptions struct {
	Colors    *Colors
	ShowMatch bool   // matched field and score per result
	Source    string // dataset source shown in headers, empty to omit
}

func (o TableOptions) colors() *Colors {
	if o.Colors == nil {
		return NewColors(ColorNever)
	}
	return o.Colors
}

// RenderResults renders ranked search results as a table
func RenderResults(w io.Writer, query string, results []search.Result, opts TableOptions) {
	c := opts.colors()
	if len(results) == 0 {
		_, _ = fmt.Fprintf(w, "No stations found for %q.\n", query)
		return
	}

	header := fmt.Sprintf("%d station", len(results))
	if len(results) != 1 {
		header += "s"
	}
	if opts.Source != "" {
		header += " " + c.Muted("(%s)", opts.Source)
	}
	_, _ = fmt.Fprintln(w, c.Header(header))

	for i, r := range results {
		st := r.Station
		line := fmt.Sprintf("%3d. %s %s %s %s",
			i+1,
			c.Code("%-5s", st.Code),
			c.Name(PadRight(Truncate(st.Name, nameWidth), nameWidth)),
			c.Regional(PadRight(Truncate(DisplayRegional(r), regionalWidth), regionalWidth)),
			c.Place(Place(&st)),
		)
		if opts.ShowMatch {
			line += "  " + c.FormatScore(r.Score) + " " + c.Muted(matchLabel(r))
		}
		_, _ = fmt.Fprintln(w, line)
	}
}

// DisplayRegional returns the regional name to show for a result: the one
// that matched, else the first populated one.
func DisplayRegional(r search.Result) string {
	if r.Field == search.FieldRegional {
		if v, ok := r.Station.RegionalName(r.Language); ok {
			return v
		}
	}
	if names := r.Station.RegionalNames(); len(names) > 0 {
		return names[0].Value
	}
	return ""
}

func matchLabel(r search.Result) string {
	if r.Field == search.FieldRegional {
		return r.Field.String() + ":" + r.Language.Tag()
	}
	return r.Field.String()
}

// Place formats district and state, omitting a district equal to the state.
func Place(st *models.Station) string {
	if strings.EqualFold(st.District, st.State) {
		return st.State
	}
	return st.District + ", " + st.State
}

// RenderStations renders a numbered list of stations
func RenderStations(w io.Writer, title string, stations []models.Station, opts TableOptions) {
	c := opts.colors()
	if len(stations) == 0 {
		_, _ = fmt.Fprintln(w, "No stations.")
		return
	}

	if title != "" {
		_, _ = fmt.Fprintln(w, c.Header(title))
	}
	for i := range stations {
		st := &stations[i]
		_, _ = fmt.Fprintf(w, "%3d. %s %s %s\n",
			i+1,
			c.Code("%-5s", st.Code),
			c.Name(PadRight(Truncate(st.Name, nameWidth), nameWidth)),
			c.Place(Place(st)),
		)
	}
}

// RenderStationCard renders every known detail of one station
func RenderStationCard(w io.Writer, st models.Station, opts TableOptions) {
	c := opts.colors()

	_, _ = fmt.Fprintf(w, "%s  %s\n", c.Name(st.Name), c.Code(st.Code))
	row := func(label, value string) {
		_, _ = fmt.Fprintf(w, "  %s %s\n", c.Muted("%-10s", label+":"), value)
	}

	row("District", st.District)
	row("State", st.State)
	if st.ShowTrainCount() {
		row("Trains", st.TrainCount)
	}
	if lat, lon, ok := st.Coordinates(); ok {
		row("Location", fmt.Sprintf("%.4f, %.4f", lat, lon))
	}
	if st.Address != "" {
		row("Address", st.Address)
	}

	if names := st.RegionalNames(); len(names) > 0 {
		_, _ = fmt.Fprintf(w, "  %s\n", c.Muted("Names:"))
		for _, n := range names {
			_, _ = fmt.Fprintf(w, "    %s %s\n",
				c.Muted(PadRight(n.Language.Label(), 10)),
				c.Regional(n.Value),
			)
		}
	}
	if len(st.Utterances) > 0 {
		row("Also", strings.Join(st.Utterances, ", "))
	}
	if opts.Source != "" {
		row("Source", c.FormatSource(opts.Source))
	}
}

// RenderNearby renders stations by distance from a point
func RenderNearby(w io.Writer, nearby []dataset.NearbyStation, opts TableOptions) {
	c := opts.colors()
	if len(nearby) == 0 {
		_, _ = fmt.Fprintln(w, "No stations with coordinates nearby.")
		return
	}

	for i := range nearby {
		st := &nearby[i].Station
		_, _ = fmt.Fprintf(w, "%s  %s %s %s\n",
			c.Strong("%7.1f km", nearby[i].DistanceKM),
			c.Code("%-5s", st.Code),
			c.Name(PadRight(Truncate(st.Name, nameWidth), nameWidth)),
			c.Place(Place(st)),
		)
	}
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ResultJSON is the JSON shape of one search result.
type ResultJSON struct {
	Rank     int            `json:"rank"`
	Score    float64        `json:"score"`
	Distance float64        `json:"distance"`
	Field    string         `json:"field"`
	Language string         `json:"language,omitempty"`
	Station  models.Station `json:"station"`
}

// ResultsJSON converts results for JSON output.
func ResultsJSON(results []search.Result) []ResultJSON {
	out := make([]ResultJSON, len(results))
	for i, r := range results {
		out[i] = ResultJSON{
			Rank:     i + 1,
			Score:    r.Score,
			Distance: r.Distance,
			Field:    r.Field.String(),
			Station:  r.Station,
		}
		if r.Field == search.FieldRegional {
			out[i].Language = r.Language.Tag()
		}
	}
	return out
}

// PadRight pads s with spaces to the given display width. Wide and
// combining characters are measured as the terminal renders them.
func PadRight(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// Truncate shortens s to at most width display cells, never splitting a
// grapheme cluster.
func Truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var b strings.Builder
	used := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cw := g.Width()
		if used+cw > width-1 {
			break
		}
		b.WriteString(g.Str())
		used += cw
	}
	b.WriteString("…")
	return b.String()
}
