// Package complete implements inline completion for a live-edited prompt
// buffer: trigger detection, candidate resolution, fuzzy ranking and
// splicing the chosen candidate back into the buffer.
//
// All offsets are byte offsets into the UTF-8 buffer text. Hosts that track
// the cursor as row/column convert before calling into this package.
package complete

import "strings"

// Snapshot is the host buffer at one instant.
type Snapshot struct {
	Text   string
	Cursor int
}

// cursor returns the effective cursor. A cursor at or before the start of
// the buffer is treated as the end, which is where hosts leave it after
// replacing the text programmatically.
func (s Snapshot) cursor() int {
	if s.Cursor <= 0 || s.Cursor > len(s.Text) {
		return len(s.Text)
	}
	return s.Cursor
}

func (s Snapshot) beforeCursor() string {
	return s.Text[:s.cursor()]
}

// Mode identifies which kind of completion a trigger opened.
type Mode int

const (
	ModeNone Mode = iota
	ModeSlash
	ModePath
)

func (m Mode) String() string {
	switch m {
	case ModeSlash:
		return "slash"
	case ModePath:
		return "path"
	default:
		return "none"
	}
}

// Trigger is the result of running detection over a snapshot. Offset is the
// index of the '/' or '@' that opened the completion.
type Trigger struct {
	Mode   Mode
	Offset int
}

// Detect decides whether the snapshot is inside a completion context.
//
// Slash commands only count when '/' opens the whole buffer. Path references
// use the last '@' before the cursor, and only when it starts the buffer or
// follows whitespace, so e-mail addresses and mid-word '@' are ignored.
func Detect(s Snapshot) Trigger {
	if strings.HasPrefix(s.Text, "/") {
		return Trigger{Mode: ModeSlash}
	}

	before := s.beforeCursor()
	at := strings.LastIndexByte(before, '@')
	if at < 0 {
		return Trigger{}
	}
	if at == 0 || isBoundary(before[at-1]) {
		return Trigger{Mode: ModePath, Offset: at}
	}
	return Trigger{}
}

func isBoundary(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// pathText is everything typed after the '@' up to the cursor.
func pathText(t Trigger, s Snapshot) string {
	before := s.beforeCursor()
	if t.Offset+1 > len(before) {
		return ""
	}
	return before[t.Offset+1:]
}

// searchString returns the raw text the user is filtering with. Slash mode
// keeps the leading '/', path mode drops the '@' and any directory prefix.
func searchString(t Trigger, s Snapshot) string {
	switch t.Mode {
	case ModeSlash:
		return s.beforeCursor()
	case ModePath:
		p := pathText(t, s)
		if i := strings.LastIndexByte(p, '/'); i >= 0 {
			return p[i+1:]
		}
		return p
	}
	return ""
}

// queryFor strips the trigger from a search string before fuzzy matching.
func queryFor(mode Mode, search string) string {
	if mode == ModeSlash {
		return strings.TrimLeft(search, "/")
	}
	return search
}
