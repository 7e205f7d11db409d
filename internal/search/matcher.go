package search

import (
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/bluele/gcache"

	"github.com/mobil-koeln/railsearch/internal/models"
)

const (
	// DefaultLimit caps the number of results returned by Search.
	DefaultLimit = 50

	// DefaultThreshold is the largest normalized distance a match may have.
	DefaultThreshold = 0.4

	// DefaultMinMatchLength is the shortest query that is matched fuzzily.
	// Shorter queries only match as exact substrings.
	DefaultMinMatchLength = 2

	// DefaultCacheSize is the number of result lists kept per matcher.
	DefaultCacheSize = 256

	// exactBonus is added, times the field weight, when a field equals the
	// whole query.
	exactBonus = 0.5
)

// Mode selects the matching strategy.
type Mode int

const (
	// ModeFuzzy tolerates typos within the threshold.
	ModeFuzzy Mode = iota
	// ModeSubstring only accepts exact substrings. It is a degraded mode
	// with the same weights and ranking.
	ModeSubstring
)

func (m Mode) String() string {
	if m == ModeSubstring {
		return "substring"
	}
	return "fuzzy"
}

// Result is one ranked station.
type Result struct {
	Station  models.Station
	Score    float64
	Distance float64
	Field    FieldKind
	Language models.Language // meaningful when Field is FieldRegional
	Index    int

	fieldLen int
}

// MatchedValue returns the original text of the field that matched.
func (r Result) MatchedValue() string {
	switch r.Field {
	case FieldName:
		return r.Station.Name
	case FieldCode:
		return r.Station.Code
	case FieldRegional:
		v, _ := r.Station.RegionalName(r.Language)
		return v
	case FieldDistrict:
		return r.Station.District
	case FieldState:
		return r.Station.State
	}
	return ""
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the maximum normalized distance, clamped to [0, 1].
func WithThreshold(t float64) Option {
	return func(m *Matcher) {
		m.threshold = math.Max(0, math.Min(1, t))
	}
}

// WithMinMatchLength sets the shortest query that is matched fuzzily.
func WithMinMatchLength(n int) Option {
	return func(m *Matcher) {
		m.minMatch = n
	}
}

// WithMode sets the matching mode.
func WithMode(mode Mode) Option {
	return func(m *Matcher) {
		m.mode = mode
	}
}

// WithCacheSize sets the result cache size. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(m *Matcher) {
		m.cacheSize = n
	}
}

// Matcher ranks indexed stations against queries. It is safe for
// concurrent use.
type Matcher struct {
	idx       *Index
	threshold float64
	minMatch  int
	mode      Mode
	cacheSize int

	cache gcache.Cache
	pool  sync.Pool
}

// NewMatcher creates a matcher over idx. A nil index behaves as empty.
func NewMatcher(idx *Index, opts ...Option) *Matcher {
	if idx == nil {
		idx = &Index{}
	}
	m := &Matcher{
		idx:       idx,
		threshold: DefaultThreshold,
		minMatch:  DefaultMinMatchLength,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cacheSize > 0 {
		m.cache = gcache.New(m.cacheSize).LRU().Build()
	}
	width := idx.maxRunes
	m.pool.New = func() any { return newScratch(width) }
	return m
}

// Index returns the index the matcher searches.
func (m *Matcher) Index() *Index { return m.idx }

// Threshold returns the configured maximum normalized distance.
func (m *Matcher) Threshold() float64 { return m.threshold }

// Mode returns the matching mode.
func (m *Matcher) Mode() Mode { return m.mode }

// Search returns at most limit stations matching query, best first.
// A limit <= 0 means DefaultLimit. Blank queries return nothing.
func (m *Matcher) Search(query string, limit int) []Result {
	q := Normalize(query)
	if q == "" || m.idx.Len() == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := strconv.Itoa(limit) + "\x00" + q
	if m.cache != nil {
		if v, err := m.cache.Get(key); err == nil {
			return cloneResults(v.([]Result))
		}
	}

	results := m.search(q, limit)
	if m.cache != nil {
		_ = m.cache.Set(key, results)
		return cloneResults(results)
	}
	return results
}

// CachedQueries returns the number of result lists held in the cache.
func (m *Matcher) CachedQueries() int {
	if m.cache == nil {
		return 0
	}
	return m.cache.Len(false)
}

func (m *Matcher) search(q string, limit int) []Result {
	p := parseQuery(q)
	s := m.pool.Get().(*scratch)
	defer m.pool.Put(s)

	var results []Result
	for i := range m.idx.Len() {
		var best candidate
		if !p.extended {
			m.matchPlain(s, &best, i, p.plain)
		}
		m.matchGroups(s, &best, i, p.groups)
		if r, ok := m.result(i, best); ok {
			results = append(results, r)
		}
	}

	// Ranking sees every candidate before the cap applies.
	sort.Slice(results, func(a, b int) bool {
		return ranksBefore(&results[a], &results[b])
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// ranksBefore orders by score, then shorter matched field, then
// collection order.
func ranksBefore(a, b *Result) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.fieldLen != b.fieldLen {
		return a.fieldLen < b.fieldLen
	}
	return a.Index < b.Index
}

// termDistance matches one fuzzy term against a field.
func (m *Matcher) termDistance(s *scratch, q, field []rune) (float64, bool) {
	if m.mode == ModeSubstring || len(q) < m.minMatch {
		return 0, indexRunes(field, q) >= 0
	}
	maxEdits := int(math.Floor(m.threshold*float64(len(q)) + 1e-9))
	d := s.substringDistance(q, field, maxEdits)
	if d > maxEdits {
		return 0, false
	}
	return math.Min(1, float64(d)/float64(len(q))), true
}

func (m *Matcher) matchPlain(s *scratch, best *candidate, i int, q []rune) {
	fields := m.idx.fields[i]
	for fi := range fields {
		f := &fields[fi]
		dist, ok := m.termDistance(s, q, f.runes)
		if !ok {
			continue
		}
		best.offer(f, dist, equalRunes(f.runes, q))
	}
}

// matchGroups offers the fields of station i that satisfy any group.
func (m *Matcher) matchGroups(s *scratch, best *candidate, i int, groups []group) {
	fields := m.idx.fields[i]

	for _, g := range groups {
		if violatesAny(fields, g.inverse) {
			continue
		}
		if len(g.positive) == 0 {
			if f := nameField(fields); f != nil {
				best.offer(f, 0, false)
			}
			continue
		}
		for fi := range fields {
			f := &fields[fi]
			dist, ok := m.groupDistance(s, g.positive, f.runes)
			if !ok {
				continue
			}
			exact := len(g.positive) == 1 && equalRunes(f.runes, g.positive[0].text)
			best.offer(f, dist, exact)
		}
	}
}

// groupDistance is the mean term distance when every term matches field.
func (m *Matcher) groupDistance(s *scratch, terms []term, field []rune) (float64, bool) {
	var sum float64
	for _, t := range terms {
		if t.kind == termFuzzy {
			d, ok := m.termDistance(s, t.text, field)
			if !ok {
				return 0, false
			}
			sum += d
			continue
		}
		if !t.literalMatch(field) {
			return 0, false
		}
	}
	return sum / float64(len(terms)), true
}

func violatesAny(fields []Field, inverse []term) bool {
	for _, t := range inverse {
		for fi := range fields {
			if t.literalMatch(fields[fi].runes) {
				return true
			}
		}
	}
	return false
}

func nameField(fields []Field) *Field {
	for fi := range fields {
		if fields[fi].Kind == FieldName {
			return &fields[fi]
		}
	}
	return nil
}

func (m *Matcher) result(i int, c candidate) (Result, bool) {
	if c.field == nil {
		return Result{}, false
	}
	return Result{
		Station:  m.idx.stations[i],
		Score:    c.score,
		Distance: c.dist,
		Field:    c.field.Kind,
		Language: c.field.Language,
		Index:    i,
		fieldLen: len(c.field.runes),
	}, true
}

// candidate tracks the best field of one station.
type candidate struct {
	field *Field
	score float64
	dist  float64
}

func (c *candidate) offer(f *Field, dist float64, exact bool) {
	w := f.Kind.Weight()
	score := w * (1 - dist)
	if exact {
		score += w * exactBonus
	}
	if c.field != nil {
		if score < c.score || (score == c.score && len(f.runes) >= len(c.field.runes)) {
			return
		}
	}
	c.field, c.score, c.dist = f, score, dist
}

func cloneResults(results []Result) []Result {
	if results == nil {
		return nil
	}
	out := make([]Result, len(results))
	copy(out, results)
	return out
}

// Stations extracts the stations from results, preserving order.
func Stations(results []Result) []models.Station {
	out := make([]models.Station, len(results))
	for i := range results {
		out[i] = results[i].Station
	}
	return out
}
