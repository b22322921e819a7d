package prompt

import (
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/term-complete/internal/cache"
)

var errPending = errors.New("directory listing still loading")

// dirLoadedMsg reports that a background directory read finished.
type dirLoadedMsg struct {
	dir string
	err error
}

// asyncLoader serves listings from the shared cache and queues misses for
// reading off the event loop, so typing never waits on the filesystem.
type asyncLoader struct {
	dirs    *cache.Dirs
	pending map[string]bool
	failed  map[string]error
	queued  []string
}

func newAsyncLoader(dirs *cache.Dirs) *asyncLoader {
	return &asyncLoader{
		dirs:    dirs,
		pending: make(map[string]bool),
		failed:  make(map[string]error),
	}
}

// Load implements complete.DirLoader.
func (l *asyncLoader) Load(dir string) ([]cache.Entry, error) {
	dir = filepath.Clean(dir)
	if entries, ok := l.dirs.Get(dir); ok {
		return entries, nil
	}
	if err, ok := l.failed[dir]; ok {
		return nil, err
	}
	if !l.pending[dir] {
		l.pending[dir] = true
		l.queued = append(l.queued, dir)
	}
	return nil, errPending
}

// drain returns a command reading every queued directory.
func (l *asyncLoader) drain() tea.Cmd {
	if len(l.queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(l.queued))
	for _, dir := range l.queued {
		cmds = append(cmds, l.load(dir))
	}
	l.queued = nil
	return tea.Batch(cmds...)
}

func (l *asyncLoader) load(dir string) tea.Cmd {
	dirs := l.dirs
	return func() tea.Msg {
		_, err := dirs.Load(dir)
		return dirLoadedMsg{dir: dir, err: err}
	}
}

// finish records the outcome of a background read.
func (l *asyncLoader) finish(msg dirLoadedMsg) {
	delete(l.pending, msg.dir)
	if msg.err != nil {
		l.failed[msg.dir] = msg.err
	}
}

// retry forgets failed reads so the next lookup tries the filesystem again.
func (l *asyncLoader) retry() {
	clear(l.failed)
}
