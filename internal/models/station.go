package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingField is returned by Validate when a required field is empty.
var ErrMissingField = errors.New("missing required field")

// Station is one railway station record from the dataset.
type Station struct {
	Name       string
	Code       string
	Regional   [NumLanguages]string
	District   string
	State      string
	TrainCount string
	Latitude   *float64
	Longitude  *float64
	Address    string
	Utterances []string
}

// RegionalName is a populated regional-script name.
type RegionalName struct {
	Language Language
	Value    string
}

// RegionalName returns the name in the given script, if present.
func (s *Station) RegionalName(lang Language) (string, bool) {
	if !lang.Valid() {
		return "", false
	}
	v := s.Regional[lang]
	return v, v != ""
}

// RegionalNames returns the populated regional names in language order.
func (s *Station) RegionalNames() []RegionalName {
	var names []RegionalName
	for _, lang := range Languages {
		if v, ok := s.RegionalName(lang); ok {
			names = append(names, RegionalName{Language: lang, Value: v})
		}
	}
	return names
}

// HasCoordinates reports whether both latitude and longitude are present.
func (s *Station) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Coordinates returns the station position when both values are present.
func (s *Station) Coordinates() (lat, lon float64, ok bool) {
	if !s.HasCoordinates() {
		return 0, 0, false
	}
	return *s.Latitude, *s.Longitude, true
}

// ShowTrainCount reports whether the train count should be displayed.
// "0" is a sentinel for "not displayed".
func (s *Station) ShowTrainCount() bool {
	tc := strings.TrimSpace(s.TrainCount)
	return tc != "" && tc != "0"
}

// Validate checks the fields every record must carry.
func (s *Station) Validate() error {
	switch {
	case strings.TrimSpace(s.Code) == "":
		return fmt.Errorf("%w: code", ErrMissingField)
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: name (code %s)", ErrMissingField, s.Code)
	case strings.TrimSpace(s.District) == "":
		return fmt.Errorf("%w: district (code %s)", ErrMissingField, s.Code)
	case strings.TrimSpace(s.State) == "":
		return fmt.Errorf("%w: state (code %s)", ErrMissingField, s.Code)
	}
	return nil
}

// StationResponse is the raw JSON shape of a dataset record.
// The dataset is not strict about scalar types, so coordinates and
// train counts accept both strings and numbers.
type StationResponse struct {
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	Utterances []string `json:"utterances,omitempty"`
	NameHI     string   `json:"name_hi,omitempty"`
	NameGU     string   `json:"name_gu,omitempty"`
	NameTA     string   `json:"name_ta,omitempty"`
	NameTE     string   `json:"name_te,omitempty"`
	NameKN     string   `json:"name_kn,omitempty"`
	NameML     string   `json:"name_ml,omitempty"`
	NameMR     string   `json:"name_mr,omitempty"`
	NamePA     string   `json:"name_pa,omitempty"`
	NameBN     string   `json:"name_bn,omitempty"`
	NameOR     string   `json:"name_or,omitempty"`
	NameAS     string   `json:"name_as,omitempty"`
	District   string   `json:"district"`
	State      string   `json:"state"`
	TrainCount flexText `json:"trainCount"`
	Latitude   flexNum  `json:"latitude,omitzero"`
	Longitude  flexNum  `json:"longitude,omitzero"`
	Address    string   `json:"address,omitempty"`
}

// regional returns pointers to the name_* fields in Languages order.
func (r *StationResponse) regional() [NumLanguages]*string {
	return [NumLanguages]*string{
		Hindi:     &r.NameHI,
		Gujarati:  &r.NameGU,
		Tamil:     &r.NameTA,
		Telugu:    &r.NameTE,
		Kannada:   &r.NameKN,
		Malayalam: &r.NameML,
		Marathi:   &r.NameMR,
		Punjabi:   &r.NamePA,
		Bengali:   &r.NameBN,
		Odia:      &r.NameOR,
		Assamese:  &r.NameAS,
	}
}

// ToStation converts the raw record to a Station.
func (r *StationResponse) ToStation() *Station {
	s := &Station{
		Name:       strings.TrimSpace(r.Name),
		Code:       strings.TrimSpace(r.Code),
		District:   strings.TrimSpace(r.District),
		State:      strings.TrimSpace(r.State),
		TrainCount: string(r.TrainCount),
		Address:    strings.TrimSpace(r.Address),
		Utterances: r.Utterances,
	}
	for lang, p := range r.regional() {
		s.Regional[lang] = strings.TrimSpace(*p)
	}
	if s.TrainCount == "" {
		s.TrainCount = "0"
	}
	if r.Latitude.set && r.Longitude.set {
		lat, lon := r.Latitude.v, r.Longitude.v
		s.Latitude, s.Longitude = &lat, &lon
	}
	return s
}

// toResponse converts a Station back to the dataset shape.
func (s *Station) toResponse() StationResponse {
	r := StationResponse{
		Name:       s.Name,
		Code:       s.Code,
		Utterances: s.Utterances,
		District:   s.District,
		State:      s.State,
		TrainCount: flexText(s.TrainCount),
		Address:    s.Address,
	}
	for lang, p := range r.regional() {
		*p = s.Regional[lang]
	}
	if lat, lon, ok := s.Coordinates(); ok {
		r.Latitude = flexNum{v: lat, set: true}
		r.Longitude = flexNum{v: lon, set: true}
	}
	return r
}

// MarshalJSON encodes the station in the dataset shape.
func (s Station) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toResponse())
}

// UnmarshalJSON decodes a station from the dataset shape.
func (s *Station) UnmarshalJSON(data []byte) error {
	var r StationResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*s = *r.ToStation()
	return nil
}

// flexText accepts a JSON string or number. Anything else decodes as
// empty.
type flexText string

func (t *flexText) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = flexText(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// Other JSON types are treated as absent.
		*t = ""
		return nil
	}
	*t = flexText(n.String())
	return nil
}

// flexNum is an optional number that may arrive as a JSON string.
type flexNum struct {
	v   float64
	set bool
}

func (n *flexNum) UnmarshalJSON(data []byte) error {
	*n = flexNum{}
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		// Unparseable coordinates are treated as absent.
		return nil
	}
	n.v, n.set = f, true
	return nil
}

func (n flexNum) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.v)
}

// IsZero lets omitzero skip unset numbers when encoding.
func (n flexNum) IsZero() bool { return !n.set }
