package complete

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind tells which provider produced a candidate.
type Kind int

const (
	KindCommand Kind = iota + 1
	KindFile
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindFile:
		return "file"
	case KindDir:
		return "dir"
	}
	return "unknown"
}

const (
	commandGlyph = "⚡ "
	dirGlyph     = "📂 "
	fileGlyph    = "📄 "
)

// Candidate is one selectable completion. Containers are directories: their
// label ends in '/' and accepting one keeps the completion open.
type Candidate struct {
	Label     string
	Prefix    string
	Container bool
	Kind      Kind
}

// CommandCandidate builds the candidate for a slash command name.
func CommandCandidate(name string) Candidate {
	return Candidate{Label: name, Prefix: commandGlyph, Kind: KindCommand}
}

// PathCandidate builds the candidate for a directory entry.
func PathCandidate(name string, isDir bool) Candidate {
	if isDir {
		return Candidate{Label: name + "/", Prefix: dirGlyph, Container: true, Kind: KindDir}
	}
	return Candidate{Label: name, Prefix: fileGlyph, Kind: KindFile}
}

// matchText is the part of the label the query is matched against; the
// trailing '/' of a directory is never matched.
func (c Candidate) matchText() string {
	if c.Container {
		return strings.TrimSuffix(c.Label, "/")
	}
	return c.Label
}

// RankedCandidate is a candidate that survived filtering. Matched holds byte
// offsets into Candidate.Label.
type RankedCandidate struct {
	Candidate Candidate
	Score     float64
	Matched   []int
}

// Rank filters candidates against query and orders them by score, highest
// first. Equal scores keep provider order. An empty query keeps every
// candidate unscored.
func Rank(query string, candidates []Candidate) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	if query == "" {
		for _, c := range candidates {
			ranked = append(ranked, RankedCandidate{Candidate: c})
		}
		return ranked
	}

	for _, c := range candidates {
		score, offsets := Match(query, c.matchText())
		if score <= 0 {
			continue
		}
		ranked = append(ranked, RankedCandidate{Candidate: c, Score: score, Matched: offsets})
	}
	slices.SortStableFunc(ranked, func(a, b RankedCandidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})
	return ranked
}

// Segment is a run of label text that is either highlighted or not.
type Segment struct {
	Text  string
	Match bool
}

// Segments splits the label into highlighted and plain runs for rendering.
// Whitespace is never highlighted.
func (r RankedCandidate) Segments() []Segment {
	label := r.Candidate.Label
	if len(r.Matched) == 0 {
		return []Segment{{Text: label}}
	}

	matched := make(map[int]bool, len(r.Matched))
	for _, off := range r.Matched {
		matched[off] = true
	}

	var segs []Segment
	start := 0
	cur := false
	for i := 0; i < len(label); {
		ch, size := utf8.DecodeRuneInString(label[i:])
		hit := matched[i] && !unicode.IsSpace(ch)
		if i > start && hit != cur {
			segs = append(segs, Segment{Text: label[start:i], Match: cur})
			start = i
		}
		cur = hit
		i += size
	}
	if start < len(label) {
		segs = append(segs, Segment{Text: label[start:], Match: cur})
	}
	return segs
}
