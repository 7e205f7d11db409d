package search

// scratch holds the dynamic programming rows for one alignment. A Matcher
// reuses one scratch across all fields of a search.
type scratch struct {
	prev2, prev, cur []int
}

func newScratch(width int) *scratch {
	return &scratch{
		prev2: make([]int, width+1),
		prev:  make([]int, width+1),
		cur:   make([]int, width+1),
	}
}

func (s *scratch) grow(width int) {
	if len(s.cur) > width {
		return
	}
	s.prev2 = make([]int, width+1)
	s.prev = make([]int, width+1)
	s.cur = make([]int, width+1)
}

// substringDistance returns the fewest edits (insertion, deletion,
// substitution, adjacent transposition) turning pattern into some substring
// of text. Leading and trailing text is free, so the position of the match
// does not matter. It returns maxEdits+1 as soon as the result is known to
// exceed maxEdits.
func (s *scratch) substringDistance(pattern, text []rune, maxEdits int) int {
	m, n := len(pattern), len(text)
	if m == 0 {
		return 0
	}
	if n == 0 {
		return m
	}
	s.grow(n)

	prev2, prev, cur := s.prev2[:n+1], s.prev[:n+1], s.cur[:n+1]
	for j := range prev {
		prev[j] = 0
	}
	prevMin := 0

	for i := 1; i <= m; i++ {
		cur[0] = i
		rowMin := i
		pc := pattern[i-1]
		for j := 1; j <= n; j++ {
			cost := 1
			if pc == text[j-1] {
				cost = 0
			}
			d := prev[j-1] + cost
			if v := prev[j] + 1; v < d {
				d = v
			}
			if v := cur[j-1] + 1; v < d {
				d = v
			}
			if i > 1 && j > 1 && pc == text[j-2] && pattern[i-2] == text[j-1] {
				if v := prev2[j-2] + 1; v < d {
					d = v
				}
			}
			cur[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		// Later rows are bounded below by min(rowMin, prevMin+1).
		if rowMin > maxEdits && prevMin >= maxEdits {
			return maxEdits + 1
		}
		prevMin = rowMin
		prev2, prev, cur = prev, cur, prev2
	}

	best := prev[0]
	for _, d := range prev[1:] {
		if d < best {
			best = d
		}
	}
	return best
}

// indexRunes reports the first index of sub in s, or -1.
func indexRunes(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
	for i := 0; i+len(sub) <= len(s); i++ {
		if equalRunes(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

func hasPrefixRunes(s, prefix []rune) bool {
	return len(s) >= len(prefix) && equalRunes(s[:len(prefix)], prefix)
}

func hasSuffixRunes(s, suffix []rune) bool {
	return len(s) >= len(suffix) && equalRunes(s[len(s)-len(suffix):], suffix)
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
