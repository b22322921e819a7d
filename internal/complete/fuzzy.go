package complete

import (
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
)

const (
	adjacentBonus = 100.0
	prefixBonus   = 10.0
)

// Match scores query against candidate. A score of zero means no match.
// Offsets are the byte indexes of the matched characters in candidate, in
// ascending order.
//
// Characters of query must appear in candidate in order (case-insensitive).
// Among matches, adjacent characters weigh most, then a match on the first
// character, then a shorter candidate.
func Match(query, candidate string) (float64, []int) {
	if query == "" || candidate == "" {
		return 0, nil
	}
	found := fuzzy.Find(query, []string{candidate})
	if len(found) == 0 {
		return 0, nil
	}
	offsets := found[0].MatchedIndexes
	return score(candidate, offsets), offsets
}

func score(candidate string, offsets []int) float64 {
	s := 1.0
	for i := 1; i < len(offsets); i++ {
		prev := offsets[i-1]
		_, size := utf8.DecodeRuneInString(candidate[prev:])
		if offsets[i] == prev+size {
			s += adjacentBonus
		}
	}
	if offsets[0] == 0 {
		s += prefixBonus
	}
	// Always below one so it only orders otherwise equal matches.
	s += 1 / float64(1+utf8.RuneCountInString(candidate))
	return s
}
