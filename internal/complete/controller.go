package complete

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/samsaffron/term-complete/internal/cache"
)

// ErrNoSession is returned by Accept when no completion is open.
var ErrNoSession = errors.New("no completion in progress")

// Editor is the host buffer the controller writes completions into.
// SetBuffer may synchronously report the change back through Update; that
// call is ignored.
type Editor interface {
	SetBuffer(text string, cursor int)
}

// Options configures a Controller.
type Options struct {
	// Commands are the slash commands offered when the buffer starts with '/'.
	Commands []string
	// BasePath is the directory '@' references resolve against.
	BasePath string
	// Ignore lists glob patterns for entries path completion never offers.
	Ignore []string
	// Dirs is a listing cache, possibly shared between controllers. When nil
	// a private cache of CacheSize entries is created.
	Dirs      *cache.Dirs
	CacheSize int
	Logger    *slog.Logger
}

// session is the state of one open completion.
type session struct {
	active   bool
	mode     Mode
	trigger  int
	suppress bool
}

// mutate runs fn with suppress set, so buffer changes fn causes are not
// detected again. It must not be nested.
func (s *session) mutate(fn func()) {
	if s.suppress {
		panic("complete: nested buffer mutation")
	}
	s.suppress = true
	defer func() { s.suppress = false }()
	fn()
}

// State is a read-only view of the current session.
type State struct {
	Open    bool
	Mode    Mode
	Trigger int
}

// Controller drives completion for one buffer. It is not safe for concurrent
// use; hosts call it from their event loop.
type Controller struct {
	editor   Editor
	commands Provider
	paths    Provider
	logger   *slog.Logger

	sess        session
	snap        Snapshot
	items       []RankedCandidate
	search      string
	highlighted int
	gen         uint64
}

// New creates a controller writing completions into editor.
func New(editor Editor, opts Options) (*Controller, error) {
	logger := opts.Logger
	if logger == nil {
		logger = discardLogger()
	}
	dirs := opts.Dirs
	if dirs == nil {
		size := opts.CacheSize
		if size == 0 {
			size = cache.DefaultDirsSize
		}
		var err error
		if dirs, err = cache.NewDirs(size); err != nil {
			return nil, err
		}
	}
	return NewWithProviders(editor,
		NewCommandProvider(opts.Commands),
		NewPathProvider(opts.BasePath, dirs, logger).Ignore(opts.Ignore...),
		logger,
	), nil
}

// NewWithProviders creates a controller with explicit candidate sources.
func NewWithProviders(editor Editor, commands, paths Provider, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = discardLogger()
	}
	return &Controller{editor: editor, commands: commands, paths: paths, logger: logger}
}

// Update reports a buffer change or cursor move. Detection runs from
// scratch against s.
func (c *Controller) Update(s Snapshot) {
	if c.sess.suppress {
		return
	}
	c.gen++
	c.snap = s
	c.refresh()
}

// Generation identifies the latest snapshot passed to Update.
func (c *Controller) Generation() uint64 {
	return c.gen
}

// Refresh re-runs detection on the current snapshot, for hosts that loaded
// listings in the background. Results computed for an older generation are
// dropped; it reports whether the refresh was applied.
func (c *Controller) Refresh(gen uint64) bool {
	if gen != c.gen || c.sess.suppress {
		return false
	}
	c.refresh()
	return true
}

func (c *Controller) refresh() {
	t := Detect(c.snap)
	if t.Mode == ModeNone {
		c.hide()
		return
	}

	search := searchString(t, c.snap)
	ranked := Rank(queryFor(t.Mode, search), c.provider(t.Mode).Candidates(t, c.snap))
	if !shouldShow(t.Mode, ranked, search) {
		c.hide()
		return
	}

	c.sess = session{active: true, mode: t.Mode, trigger: t.Offset}
	c.items = ranked
	c.search = search
	c.highlighted = 0
	c.logger.Debug("completion open", "mode", t.Mode, "trigger", t.Offset, "search", search, "items", len(ranked))
}

func (c *Controller) provider(m Mode) Provider {
	if m == ModeSlash {
		return c.commands
	}
	return c.paths
}

// shouldShow hides a lone candidate that is already what the user typed.
func shouldShow(mode Mode, ranked []RankedCandidate, search string) bool {
	switch len(ranked) {
	case 0:
		return false
	case 1:
		typed := search
		if mode == ModeSlash {
			typed = strings.TrimLeft(search, "/")
		}
		return ranked[0].Candidate.Label != typed
	}
	return true
}

// HandleKey applies a navigation key and reports whether it was consumed.
// Keys are only consumed while the dropdown is visible.
func (c *Controller) HandleKey(key string) bool {
	n := len(c.items)
	if !c.sess.active || c.sess.suppress || n == 0 {
		return false
	}
	switch key {
	case "down":
		c.highlighted = (c.highlighted + 1) % n
	case "up":
		c.highlighted = (c.highlighted - 1 + n) % n
	case "tab", "enter":
		c.commit(c.highlighted)
	case "escape", "esc":
		c.Cancel()
	default:
		return false
	}
	return true
}

// Select commits the candidate at index, as when it is clicked.
func (c *Controller) Select(index int) bool {
	if !c.sess.active || c.sess.suppress || index < 0 || index >= len(c.items) {
		return false
	}
	c.commit(index)
	return true
}

// Accept commits the highlighted candidate and returns the new buffer.
func (c *Controller) Accept() (Snapshot, error) {
	if !c.sess.active || c.sess.suppress || len(c.items) == 0 {
		return Snapshot{}, ErrNoSession
	}
	c.commit(c.highlighted)
	return c.snap, nil
}

// Cancel closes the dropdown without touching the buffer.
func (c *Controller) Cancel() {
	c.hide()
}

func (c *Controller) commit(index int) {
	chosen := c.items[index].Candidate
	mode := c.sess.mode
	next := Splice(mode, c.sess.trigger, c.snap, chosen.Label)

	c.sess.mutate(func() {
		c.editor.SetBuffer(next.Text, next.Cursor)
	})
	c.snap = next
	c.gen++
	c.logger.Debug("completion committed", "mode", mode, "label", chosen.Label)

	if mode == ModePath && chosen.Container {
		c.refresh()
		return
	}
	c.hide()
}

func (c *Controller) hide() {
	c.sess = session{suppress: c.sess.suppress}
	c.items = nil
	c.search = ""
	c.highlighted = 0
}

// Visible reports whether the dropdown should be shown.
func (c *Controller) Visible() bool {
	return c.sess.active && len(c.items) > 0
}

// Items returns the ranked candidates currently on display.
func (c *Controller) Items() []RankedCandidate {
	return c.items
}

// Highlighted returns the index of the highlighted item.
func (c *Controller) Highlighted() int {
	return c.highlighted
}

// Search returns the raw text the current items were filtered with.
func (c *Controller) Search() string {
	return c.search
}

// Snapshot returns the last buffer state the controller saw or wrote.
func (c *Controller) Snapshot() Snapshot {
	return c.snap
}

// State returns the current session.
func (c *Controller) State() State {
	return State{Open: c.sess.active, Mode: c.sess.mode, Trigger: c.sess.trigger}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
