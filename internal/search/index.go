package search

import (
	"github.com/mobil-koeln/railsearch/internal/models"
)

// FieldKind identifies which station field a match came from.
type FieldKind uint8

const (
	FieldName FieldKind = iota
	FieldCode
	FieldRegional
	FieldDistrict
	FieldState
)

var fieldWeights = [...]float64{
	FieldName:     2.0,
	FieldCode:     2.0,
	FieldRegional: 1.5,
	FieldDistrict: 1.0,
	FieldState:    1.0,
}

var fieldNames = [...]string{
	FieldName:     "name",
	FieldCode:     "code",
	FieldRegional: "regional",
	FieldDistrict: "district",
	FieldState:    "state",
}

// Weight returns the relative importance of the field kind.
func (k FieldKind) Weight() float64 {
	if int(k) >= len(fieldWeights) {
		return 0
	}
	return fieldWeights[k]
}

func (k FieldKind) String() string {
	if int(k) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[k]
}

// Field is one searchable value of a station.
type Field struct {
	Kind     FieldKind
	Language models.Language // set for FieldRegional only
	Value    string

	norm  string
	runes []rune
}

// Normalized returns the normalized form the matcher compares against.
func (f *Field) Normalized() string { return f.norm }

// Source is a read-only station collection, such as a dataset.Store.
type Source interface {
	Len() int
	At(i int) *models.Station
}

// Slice adapts a plain slice to Source.
type Slice []models.Station

func (s Slice) Len() int { return len(s) }
func (s Slice) At(i int) *models.Station { return &s[i] }

// Index holds the precomputed fields of every station in collection order.
// It is immutable once built.
type Index struct {
	stations []models.Station
	fields   [][]Field
	maxRunes int
}

// BuildIndex extracts and normalizes the searchable fields of src.
func BuildIndex(src Source) *Index {
	n := src.Len()
	idx := &Index{
		stations: make([]models.Station, n),
		fields:   make([][]Field, n),
	}
	for i := 0; i < n; i++ {
		st := src.At(i)
		idx.stations[i] = *st
		idx.fields[i] = idx.stationFields(st)
	}
	return idx
}

func (idx *Index) stationFields(st *models.Station) []Field {
	fields := make([]Field, 0, 4+models.NumLanguages)
	add := func(kind FieldKind, lang models.Language, value string) {
		n := Normalize(value)
		if n == "" {
			return
		}
		r := []rune(n)
		if len(r) > idx.maxRunes {
			idx.maxRunes = len(r)
		}
		fields = append(fields, Field{Kind: kind, Language: lang, Value: value, norm: n, runes: r})
	}

	add(FieldName, 0, st.Name)
	add(FieldCode, 0, st.Code)
	for _, rn := range st.RegionalNames() {
		add(FieldRegional, rn.Language, rn.Value)
	}
	add(FieldDistrict, 0, st.District)
	add(FieldState, 0, st.State)
	return fields
}

// Len returns the number of indexed stations.
func (idx *Index) Len() int { return len(idx.stations) }

// Station returns the station at position i.
func (idx *Index) Station(i int) models.Station { return idx.stations[i] }

// Fields returns the searchable fields of station i. The slice must not be
// modified.
func (idx *Index) Fields(i int) []Field { return idx.fields[i] }
