package prompt

import (
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/term-complete/internal/cache"
	"github.com/samsaffron/term-complete/internal/complete"
	"github.com/samsaffron/term-complete/internal/ui"
)

var testCommands = []string{"/clear", "/context", "/resume"}

func newTestModel(t *testing.T, base string) *Model {
	t.Helper()
	dirs, err := cache.NewDirs(10)
	if err != nil {
		t.Fatal(err)
	}
	m, err := New(Options{
		Commands:   testCommands,
		BasePath:   base,
		Dirs:       dirs,
		MaxVisible: 5,
		Styles:     ui.PlainStyles(io.Discard),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, k tea.KeyType) {
	m.Update(tea.KeyMsg{Type: k})
}

// settle runs pending directory loads synchronously, as the program would
// in the background.
func settle(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; len(m.loader.pending) > 0; i++ {
		if i > 10 {
			t.Fatal("directory loads never settled")
		}
		for _, dir := range slices.Sorted(maps.Keys(m.loader.pending)) {
			m.Update(m.loader.load(dir)())
		}
	}
}

func labels(m *Model) []string {
	var out []string
	for _, it := range m.ctrl.Items() {
		out = append(out, it.Candidate.Label)
	}
	return out
}

func makeTree(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	if err := os.Mkdir(filepath.Join(base, "src"), 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"README.md", filepath.Join("src", "main.go")} {
		if err := os.WriteFile(filepath.Join(base, f), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	return base
}

func TestSlashCompletion(t *testing.T) {
	m := newTestModel(t, t.TempDir())

	typeText(m, "/c")
	if !m.ctrl.Visible() {
		t.Fatal("dropdown hidden after /c")
	}
	if got := labels(m); !slices.Equal(got, []string{"/clear", "/context"}) {
		t.Errorf("labels = %v, want [/clear /context]", got)
	}

	press(m, tea.KeyDown)
	press(m, tea.KeyTab)
	if got := m.Value(); got != "/context" {
		t.Errorf("value = %q, want /context", got)
	}
	if m.ctrl.Visible() {
		t.Error("dropdown still visible after accepting a command")
	}
}

func TestEscapeKeepsBuffer(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	typeText(m, "/")
	if !m.ctrl.Visible() {
		t.Fatal("dropdown hidden after /")
	}
	press(m, tea.KeyEsc)
	if m.ctrl.Visible() {
		t.Error("dropdown visible after esc")
	}
	if got := m.Value(); got != "/" {
		t.Errorf("value = %q, want /", got)
	}
}

func TestPathCompletionLoadsInBackground(t *testing.T) {
	m := newTestModel(t, makeTree(t))

	typeText(m, "see @")
	if m.ctrl.Visible() {
		t.Fatal("dropdown shown before the listing loaded")
	}
	settle(t, m)
	if got := labels(m); !slices.Equal(got, []string{"src/", "README.md"}) {
		t.Fatalf("labels = %v, want [src/ README.md]", got)
	}

	press(m, tea.KeyEnter)
	if got := m.Value(); got != "see @src/" {
		t.Fatalf("value = %q, want %q", got, "see @src/")
	}
	settle(t, m)
	if got := labels(m); !slices.Equal(got, []string{"main.go"}) {
		t.Fatalf("labels after descent = %v, want [main.go]", got)
	}

	press(m, tea.KeyEnter)
	if got := m.Value(); got != "see @src/main.go" {
		t.Fatalf("value = %q", got)
	}
	if m.ctrl.Visible() {
		t.Fatal("dropdown visible after accepting a file")
	}

	press(m, tea.KeyEnter)
	if got := m.Submitted(); !slices.Equal(got, []string{"see @src/main.go"}) {
		t.Errorf("submitted = %v", got)
	}
	if m.Value() != "" {
		t.Errorf("buffer not cleared after submit: %q", m.Value())
	}
}

func TestStaleLoadFillsCacheOnly(t *testing.T) {
	m := newTestModel(t, makeTree(t))

	typeText(m, "@")
	press(m, tea.KeyBackspace)
	settle(t, m)

	if m.ctrl.Visible() {
		t.Error("stale listing reopened the dropdown")
	}
	if m.loader.dirs.Len() != 1 {
		t.Errorf("cached listings = %d, want 1", m.loader.dirs.Len())
	}

	typeText(m, "@")
	if !m.ctrl.Visible() {
		t.Error("cached listing not used on the next trigger")
	}
}

func TestMissingDirectoryStaysHidden(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	typeText(m, "@nope/")
	settle(t, m)
	if m.ctrl.Visible() {
		t.Error("dropdown visible for a missing directory")
	}
	if len(m.loader.pending) != 0 {
		t.Errorf("failed load requeued: %v", m.loader.pending)
	}
}

func TestClickSelectsItem(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	typeText(m, "/")
	d, ok := m.dropdown()
	if !ok {
		t.Fatal("no dropdown")
	}
	m.Update(tea.MouseMsg{
		X:      d.rect.X + 2,
		Y:      d.rect.Y + 2, // border, then the second item
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if got := m.Value(); got != "/context" {
		t.Errorf("value = %q, want /context", got)
	}
}

func TestEnterSubmitsWhenClosed(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	typeText(m, "hello")
	press(m, tea.KeyEnter)
	if got := m.Submitted(); !slices.Equal(got, []string{"hello"}) {
		t.Errorf("submitted = %v", got)
	}
	press(m, tea.KeyEnter)
	if len(m.Submitted()) != 1 {
		t.Error("empty buffer was submitted")
	}
}

func TestSetBufferPlacesCursor(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	m.SetBuffer("ab\ncd", 1)
	if got := m.snapshot(); got != (complete.Snapshot{Text: "ab\ncd", Cursor: 1}) {
		t.Errorf("snapshot = %+v", got)
	}
	m.SetBuffer("ab\ncd", 4)
	if got := m.snapshot(); got.Cursor != 4 {
		t.Errorf("cursor = %d, want 4", got.Cursor)
	}
}

func TestViewShowsDropdown(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	typeText(m, "/re")
	view := m.View()
	if !strings.Contains(view, "/resume") {
		t.Errorf("view missing candidate:\n%s", view)
	}
	if strings.Contains(view, "/clear") {
		t.Errorf("view shows filtered-out candidate:\n%s", view)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, t.TempDir())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
	if m.View() != "" {
		t.Error("view not cleared after quit")
	}
}
