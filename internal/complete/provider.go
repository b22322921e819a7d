package complete

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samsaffron/term-complete/internal/cache"
)

// Provider produces the unfiltered candidates for a trigger.
type Provider interface {
	Candidates(t Trigger, s Snapshot) []Candidate
}

// CommandProvider offers a fixed list of slash commands.
type CommandProvider struct {
	names []string
}

// NewCommandProvider returns a provider for the given command names, in order.
func NewCommandProvider(names []string) *CommandProvider {
	return &CommandProvider{names: slices.Clone(names)}
}

func (p *CommandProvider) Candidates(Trigger, Snapshot) []Candidate {
	out := make([]Candidate, 0, len(p.names))
	for _, name := range p.names {
		out = append(out, CommandCandidate(name))
	}
	return out
}

// DirLoader returns directory listings; *cache.Dirs implements it.
type DirLoader interface {
	Load(dir string) ([]cache.Entry, error)
}

// PathProvider lists the directory the current '@' reference points into.
type PathProvider struct {
	base   string
	dirs   DirLoader
	ignore []string
	logger *slog.Logger
}

// NewPathProvider resolves relative references against base.
func NewPathProvider(base string, dirs DirLoader, logger *slog.Logger) *PathProvider {
	if base == "" {
		base = "."
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &PathProvider{base: base, dirs: dirs, logger: logger}
}

// Ignore hides entries whose name matches any of the glob patterns, in
// addition to dotfiles.
func (p *PathProvider) Ignore(patterns ...string) *PathProvider {
	p.ignore = append(p.ignore, patterns...)
	return p
}

func (p *PathProvider) ignored(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range p.ignore {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Dir returns the directory to list: the base path, or the base joined with
// everything typed before the last '/'. Absolute references are used as is.
func (p *PathProvider) Dir(t Trigger, s Snapshot) string {
	text := pathText(t, s)
	i := strings.LastIndexByte(text, '/')
	if i < 0 {
		return p.base
	}
	dir := text[:i]
	if dir == "" {
		dir = "/"
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(p.base, dir)
}

// Candidates lists non-hidden, non-ignored entries, directories first, then by
// case-insensitive label. Unreadable directories yield no candidates.
func (p *PathProvider) Candidates(t Trigger, s Snapshot) []Candidate {
	dir := p.Dir(t, s)
	entries, err := p.dirs.Load(dir)
	if err != nil {
		p.logger.Debug("path completion: cannot list directory", "dir", dir, "error", err)
		return nil
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if p.ignored(e.Name) {
			continue
		}
		out = append(out, PathCandidate(e.Name, e.IsDir))
	}
	slices.SortStableFunc(out, func(a, b Candidate) int {
		if a.Container != b.Container {
			if a.Container {
				return -1
			}
			return 1
		}
		return strings.Compare(strings.ToLower(a.Label), strings.ToLower(b.Label))
	})
	return out
}
