package prompt

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/samsaffron/term-complete/internal/complete"
	"github.com/samsaffron/term-complete/internal/ui"
)

// dropdown is a rendered completion list and the screen cells it covers.
type dropdown struct {
	box        string
	rect       complete.Rect
	start, end int // visible item range
}

// itemAt maps a screen cell to an item index.
func (d dropdown) itemAt(x, y int) (int, bool) {
	row := y - d.rect.Y - 1 // top border
	if x < d.rect.X || x >= d.rect.X+d.rect.Width {
		return 0, false
	}
	if row < 0 || row >= d.end-d.start {
		return 0, false
	}
	return d.start + row, true
}

// visibleWindow returns the range of at most limit items that keeps the
// highlighted item on screen.
func visibleWindow(n, highlighted, limit int) (start, end int) {
	if limit <= 0 || n <= limit {
		return 0, n
	}
	if highlighted >= limit {
		start = highlighted - limit + 1
	}
	return start, start + limit
}

// renderDropdown draws items[start:end] in a bordered box.
func renderDropdown(s *ui.Styles, items []complete.RankedCandidate, highlighted, start, end int) string {
	width := 0
	for _, it := range items[start:end] {
		width = max(width, runewidth.StringWidth(it.Candidate.Prefix+it.Candidate.Label))
	}

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, renderItem(s, items[i], i == highlighted, width))
	}
	return s.Dropdown.Render(strings.Join(rows, "\n"))
}

func renderItem(s *ui.Styles, item complete.RankedCandidate, selected bool, width int) string {
	c := item.Candidate
	plain := c.Prefix + c.Label
	pad := strings.Repeat(" ", max(0, width-runewidth.StringWidth(plain)))
	if selected {
		return s.Selected.Render(plain + pad)
	}

	var b strings.Builder
	b.WriteString(s.Prefix.Render(c.Prefix))
	for _, seg := range item.Segments() {
		if seg.Match {
			b.WriteString(s.Match.Render(seg.Text))
		} else {
			b.WriteString(s.Item.Render(seg.Text))
		}
	}
	b.WriteString(pad)
	return b.String()
}

// boxSize measures a rendered box.
func boxSize(box string) complete.Size {
	return complete.Size{Width: lipgloss.Width(box), Height: lipgloss.Height(box)}
}

// overlay draws box over base with its top-left corner at p, growing base
// when the box hangs below it.
func overlay(base []string, box string, p complete.Point) []string {
	lines := strings.Split(box, "\n")
	for len(base) < p.Y+len(lines) {
		base = append(base, "")
	}
	for i, line := range lines {
		row := base[p.Y+i]
		left := ansi.Truncate(row, p.X, "")
		if w := ansi.StringWidth(left); w < p.X {
			left += strings.Repeat(" ", p.X-w)
		}
		right := ansi.TruncateLeft(row, p.X+ansi.StringWidth(line), "")
		base[p.Y+i] = left + line + right
	}
	return base
}

// Preview renders items as the prompt's dropdown would show them.
func Preview(s *ui.Styles, items []complete.RankedCandidate, highlighted, maxVisible int) string {
	if len(items) == 0 {
		return ""
	}
	start, end := visibleWindow(len(items), highlighted, maxVisible)
	return renderDropdown(s, items, highlighted, start, end)
}
