package models

import "strings"

// Language identifies one of the regional scripts a station name may be
// recorded in.
type Language int

// Regional languages, in the order they are indexed and displayed.
const (
	Hindi Language = iota
	Gujarati
	Tamil
	Telugu
	Kannada
	Malayalam
	Marathi
	Punjabi
	Bengali
	Odia
	Assamese

	// NumLanguages is the number of regional languages.
	NumLanguages = int(Assamese) + 1
)

// Languages lists every regional language in index order.
var Languages = [NumLanguages]Language{
	Hindi, Gujarati, Tamil, Telugu, Kannada, Malayalam,
	Marathi, Punjabi, Bengali, Odia, Assamese,
}

var languageInfo = [NumLanguages]struct {
	tag   string
	label string
	name  string
}{
	Hindi:     {"hi", "हिंदी", "Hindi"},
	Gujarati:  {"gu", "ગુજરાતી", "Gujarati"},
	Tamil:     {"ta", "தமிழ்", "Tamil"},
	Telugu:    {"te", "తెలుగు", "Telugu"},
	Kannada:   {"kn", "ಕನ್ನಡ", "Kannada"},
	Malayalam: {"ml", "മലയാളം", "Malayalam"},
	Marathi:   {"mr", "मराठी", "Marathi"},
	Punjabi:   {"pa", "ਪੰਜਾਬੀ", "Punjabi"},
	Bengali:   {"bn", "বাংলা", "Bengali"},
	Odia:      {"or", "ଓଡ଼ିଆ", "Odia"},
	Assamese:  {"as", "অসমীয়া", "Assamese"},
}

// Valid reports whether l is a known language.
func (l Language) Valid() bool {
	return l >= 0 && int(l) < NumLanguages
}

// Tag returns the short language tag, e.g. "hi".
func (l Language) Tag() string {
	if !l.Valid() {
		return ""
	}
	return languageInfo[l].tag
}

// Label returns the language name written in its own script.
func (l Language) Label() string {
	if !l.Valid() {
		return ""
	}
	return languageInfo[l].label
}

// String returns the English language name.
func (l Language) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return languageInfo[l].name
}

// ParseLanguage maps a tag ("hi") or a dataset key ("name_hi") to a Language.
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "name_")
	for _, l := range Languages {
		if languageInfo[l].tag == s {
			return l, true
		}
	}
	return 0, false
}
