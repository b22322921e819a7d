// Package prompt hosts the completion engine in a bubbletea text input.
package prompt

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samsaffron/term-complete/internal/cache"
	"github.com/samsaffron/term-complete/internal/complete"
	"github.com/samsaffron/term-complete/internal/ui"
)

const (
	headerHeight   = 1
	maxInputHeight = 8

	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures the prompt
type Options struct {
	Commands []string
	BasePath string
	Ignore   []string
	// Dirs is the listing cache; one is created when nil.
	Dirs       *cache.Dirs
	MaxVisible int
	Styles     *ui.Styles
	Logger     *slog.Logger
}

// Model is a single text input with inline slash-command and path
// completion.
type Model struct {
	textarea textarea.Model
	ctrl     *complete.Controller
	paths    *complete.PathProvider
	loader   *asyncLoader
	styles   *ui.Styles
	keyMap   KeyMap
	logger   *slog.Logger

	maxVisible int
	width      int
	height     int

	submitted []string
	quitting  bool
}

// New creates a prompt model
func New(opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	styles := opts.Styles
	if styles == nil {
		styles = ui.NewStyles(os.Stdout, ui.DefaultTheme())
	}
	dirs := opts.Dirs
	if dirs == nil {
		var err error
		if dirs, err = cache.NewDirs(cache.DefaultDirsSize); err != nil {
			return nil, err
		}
	}
	maxVisible := opts.MaxVisible
	if maxVisible <= 0 {
		maxVisible = 12
	}

	keyMap := DefaultKeyMap()
	theme := styles.Theme()

	ta := textarea.New()
	ta.Placeholder = "Type / for commands, @ for files..."
	ta.Prompt = "❯ "
	ta.ShowLineNumbers = false
	ta.CharLimit = 0 // No limit
	ta.SetWidth(defaultWidth)
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline = keyMap.Newline
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(theme.Muted)
	ta.FocusedStyle.EndOfBuffer = lipgloss.NewStyle()
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	ta.BlurredStyle = ta.FocusedStyle
	ta.Focus()

	m := &Model{
		textarea:   ta,
		styles:     styles,
		keyMap:     keyMap,
		logger:     logger,
		maxVisible: maxVisible,
		loader:     newAsyncLoader(dirs),
	}
	m.paths = complete.NewPathProvider(opts.BasePath, m.loader, logger).Ignore(opts.Ignore...)
	m.ctrl = complete.NewWithProviders(m, complete.NewCommandProvider(opts.Commands), m.paths, logger)
	return m, nil
}

// Submitted returns every line sent with enter, oldest first.
func (m *Model) Submitted() []string {
	return m.submitted
}

// Value returns the current buffer.
func (m *Model) Value() string {
	return m.textarea.Value()
}

// SetBuffer replaces the buffer and cursor. It implements complete.Editor.
func (m *Model) SetBuffer(text string, cursor int) {
	m.textarea.SetValue(text)
	row, col := RowColFromOffset(text, cursor)
	for i := 0; m.textarea.Line() > row && i <= len(text); i++ {
		m.textarea.CursorUp()
	}
	m.textarea.SetCursor(col)
	m.fitHeight()

	// Same change notification a keystroke produces; the controller ignores
	// it while it is the one writing.
	m.ctrl.Update(m.snapshot())
}

func (m *Model) snapshot() complete.Snapshot {
	text := m.textarea.Value()
	li := m.textarea.LineInfo()
	return complete.Snapshot{
		Text:   text,
		Cursor: OffsetFromRowCol(text, m.textarea.Line(), li.StartColumn+li.ColumnOffset),
	}
}

func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textarea.SetWidth(msg.Width)
		m.fitHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dirLoadedMsg:
		m.loader.finish(msg)
		if msg.err != nil {
			m.logger.Debug("directory load failed", "dir", msg.dir, "error", msg.err)
		}
		if m.wantsDir(msg.dir) {
			m.ctrl.Refresh(m.ctrl.Generation())
		}
		return m, m.loader.drain()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.ctrl.Visible() {
		if name, ok := m.keyMap.completionKey(msg); ok && m.ctrl.HandleKey(name) {
			return m, m.loader.drain()
		}
	}

	if key.Matches(msg, m.keyMap.Submit) {
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.edited()
	return m, tea.Batch(cmd, m.loader.drain())
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ctrl.Visible() || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.HandleKey("up")
	case tea.MouseButtonWheelDown:
		m.ctrl.HandleKey("down")
	case tea.MouseButtonLeft:
		d, ok := m.dropdown()
		if !ok {
			break
		}
		if i, hit := d.itemAt(msg.X, msg.Y); hit && m.ctrl.Select(i) {
			return m, m.loader.drain()
		}
	}
	return m, nil
}

// edited tells the controller about a buffer change or cursor move made
// by the user.
func (m *Model) edited() {
	m.loader.retry()
	m.fitHeight()
	m.ctrl.Update(m.snapshot())
}

func (m *Model) submit() {
	value := m.textarea.Value()
	if strings.TrimSpace(value) == "" {
		return
	}
	m.submitted = append(m.submitted, value)
	m.logger.Info("submitted", "chars", len(value))
	m.textarea.Reset()
	m.edited()
}

// wantsDir reports whether the current '@' reference lists dir.
func (m *Model) wantsDir(dir string) bool {
	snap := m.ctrl.Snapshot()
	t := complete.Detect(snap)
	if t.Mode != complete.ModePath {
		return false
	}
	return filepath.Clean(m.paths.Dir(t, snap)) == dir
}

func (m *Model) fitHeight() {
	h := min(max(m.textarea.LineCount(), 1), maxInputHeight)
	if h != m.textarea.Height() {
		m.textarea.SetHeight(h)
	}
}

func (m *Model) viewport() complete.Rect {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return complete.Rect{Width: w, Height: h}
}

// cursorPoint returns the screen cell of the text cursor.
func (m *Model) cursorPoint() complete.Point {
	li := m.textarea.LineInfo()
	lines := strings.Split(m.textarea.Value(), "\n")
	row := min(m.textarea.Line(), len(lines)-1)
	line := []rune(lines[row])
	start := min(li.StartColumn, len(line))
	end := min(start+li.ColumnOffset, len(line))

	x := lipgloss.Width(m.textarea.Prompt) + runewidth.StringWidth(string(line[start:end]))
	y := headerHeight + min(row+li.RowOffset, m.textarea.Height()-1)
	return complete.Point{X: x, Y: y}
}

func (m *Model) dropdown() (dropdown, bool) {
	if !m.ctrl.Visible() {
		return dropdown{}, false
	}
	items := m.ctrl.Items()
	start, end := visibleWindow(len(items), m.ctrl.Highlighted(), m.maxVisible)
	box := Preview(m.styles, items, m.ctrl.Highlighted(), m.maxVisible)
	size := boxSize(box)
	p := complete.Place(m.cursorPoint(), size, m.viewport())
	return dropdown{
		box:   box,
		rect:  complete.Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height},
		start: start,
		end:   end,
	}, true
}

func (m *Model) header() string {
	if n := len(m.submitted); n > 0 {
		last := strings.ReplaceAll(m.submitted[n-1], "\n", " ⏎ ")
		last = runewidth.Truncate(last, m.viewport().Width-8, "…")
		return m.styles.Muted.Render("sent: ") + m.styles.Item.Render(last)
	}
	return m.styles.Muted.Render("/ commands · @ files · enter send · ctrl+c quit")
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	lines := []string{m.header()}
	lines = append(lines, strings.Split(m.textarea.View(), "\n")...)
	if d, ok := m.dropdown(); ok {
		lines = overlay(lines, d.box, complete.Point{X: d.rect.X, Y: d.rect.Y})
	}
	return strings.Join(lines, "\n")
}
