package complete

import "strings"

// Splice returns the buffer after committing label for a completion opened
// at trigger. Slash commands replace the whole buffer. Path references
// replace the segment after the last '/' of the reference (or everything
// after the '@'), up to the cursor. Text outside that span is kept as is and
// the cursor lands right after the inserted label.
func Splice(mode Mode, trigger int, s Snapshot, label string) Snapshot {
	switch mode {
	case ModeSlash:
		return Snapshot{Text: label, Cursor: len(label)}
	case ModePath:
		cur := s.cursor()
		start := min(trigger+1, cur)
		if i := strings.LastIndexByte(s.Text[start:cur], '/'); i >= 0 {
			start += i + 1
		}
		return Snapshot{
			Text:   s.Text[:start] + label + s.Text[cur:],
			Cursor: start + len(label),
		}
	}
	return s
}
