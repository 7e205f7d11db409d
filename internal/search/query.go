package search

import "strings"

type termKind uint8

const (
	termFuzzy termKind = iota
	termExact
	termInclude
	termPrefix
	termSuffix
)

type term struct {
	kind    termKind
	inverse bool
	text    []rune
}

// group is a conjunction of terms. A pattern matches when any group does.
type group struct {
	positive []term
	inverse  []term
}

type pattern struct {
	extended bool
	plain    []rune // whole query when not extended
	groups   []group
}

// parseQuery splits a normalized query. Queries without operator tokens
// match as a whole, spaces included. When they hold several words, the
// words are also tried as one group of fuzzy terms, so word order does
// not matter.
func parseQuery(q string) pattern {
	tokens := splitTokens(q)
	if !hasOperator(tokens) {
		p := pattern{plain: []rune(q)}
		if len(tokens) > 1 {
			var g group
			for _, tok := range tokens {
				g.positive = append(g.positive, term{kind: termFuzzy, text: []rune(tok)})
			}
			p.groups = []group{g}
		}
		return p
	}

	p := pattern{extended: true}
	var g group
	flush := func() {
		if len(g.positive) > 0 || len(g.inverse) > 0 {
			p.groups = append(p.groups, g)
		}
		g = group{}
	}
	for _, tok := range tokens {
		if tok == "|" {
			flush()
			continue
		}
		t, ok := parseTerm(tok)
		if !ok {
			continue
		}
		if t.inverse {
			g.inverse = append(g.inverse, t)
		} else {
			g.positive = append(g.positive, t)
		}
	}
	flush()
	return p
}

func splitTokens(q string) []string {
	return strings.Fields(q)
}

func hasOperator(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "|" {
			return true
		}
		if len(tok) < 2 {
			continue
		}
		switch tok[0] {
		case '=', '\'', '^', '!':
			return true
		}
		if strings.HasSuffix(tok, "$") {
			return true
		}
	}
	return false
}

// parseTerm decodes one token. It reports false for tokens that are only
// operators.
func parseTerm(tok string) (term, bool) {
	t := term{kind: termFuzzy}
	if strings.HasPrefix(tok, "!") {
		t.inverse = true
		t.kind = termInclude
		tok = tok[1:]
	}

	switch {
	case strings.HasPrefix(tok, "="):
		t.kind = termExact
		tok = tok[1:]
	case strings.HasPrefix(tok, "'"):
		t.kind = termInclude
		tok = tok[1:]
	case strings.HasPrefix(tok, "^"):
		t.kind = termPrefix
		tok = tok[1:]
		if len(tok) > 1 && strings.HasSuffix(tok, "$") {
			t.kind = termExact
			tok = tok[:len(tok)-1]
		}
	case len(tok) > 1 && strings.HasSuffix(tok, "$"):
		t.kind = termSuffix
		tok = tok[:len(tok)-1]
	}

	if tok == "" {
		return term{}, false
	}
	t.text = []rune(tok)
	return t, true
}

// literalMatch applies a non-fuzzy term to a field.
func (t term) literalMatch(field []rune) bool {
	switch t.kind {
	case termExact:
		return equalRunes(field, t.text)
	case termPrefix:
		return hasPrefixRunes(field, t.text)
	case termSuffix:
		return hasSuffixRunes(field, t.text)
	default:
		return indexRunes(field, t.text) >= 0
	}
}
