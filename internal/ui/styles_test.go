package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeFromConfig(t *testing.T) {
	theme := ThemeFromConfig(ThemeConfig{Secondary: "#111111", Highlight: "9"})
	if theme.Secondary != lipgloss.Color("#111111") || theme.Border != lipgloss.Color("#111111") {
		t.Errorf("secondary override not applied to border: %+v", theme)
	}
	if theme.Highlight != lipgloss.Color("9") {
		t.Errorf("highlight = %q, want 9", theme.Highlight)
	}
	if theme.Primary != DefaultTheme().Primary {
		t.Errorf("primary changed without override: %q", theme.Primary)
	}
}

func TestPlainStylesEmitNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	s := PlainStyles(&buf)
	out := s.Match.Render("abc") + s.Item.Render("row")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain styles emitted escapes: %q", out)
	}
	if out != "abcrow" {
		t.Errorf("rendered %q, want %q", out, "abcrow")
	}
}

func TestPresetThemes(t *testing.T) {
	for _, name := range PresetThemeNames {
		preset := GetPresetTheme(name)
		if preset == nil {
			t.Fatalf("preset %q listed but not defined", name)
		}
		if got := MatchPresetTheme(preset.Config); got != name {
			t.Errorf("MatchPresetTheme(%s) = %q", name, got)
		}
	}
	if len(PresetThemeNames) != len(PresetThemes) {
		t.Errorf("%d names for %d presets", len(PresetThemeNames), len(PresetThemes))
	}
	if got := MatchPresetTheme(ThemeConfig{}); got != "gruvbox" {
		t.Errorf("empty config matched %q, want gruvbox", got)
	}
	if got := MatchPresetTheme(ThemeConfig{Primary: "1"}); got != "" {
		t.Errorf("custom config matched %q", got)
	}
	if GetPresetTheme("nope") != nil {
		t.Error("unknown preset returned a theme")
	}
}
