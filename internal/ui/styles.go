package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color palette for the prompt and dropdown
type Theme struct {
	Primary   lipgloss.Color // prompt marker and selected row
	Secondary lipgloss.Color // secondary accent
	Muted     lipgloss.Color // dimmed text (prefixes, hints)
	Text      lipgloss.Color // candidate labels
	Border    lipgloss.Color // dropdown border
	Highlight lipgloss.Color // characters matched by the query
}

// DefaultTheme returns the default color theme (gruvbox)
func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#b8bb26"), // gruvbox green
		Secondary: lipgloss.Color("#83a598"), // gruvbox aqua
		Muted:     lipgloss.Color("#928374"), // gruvbox gray
		Text:      lipgloss.Color("#ebdbb2"), // gruvbox foreground
		Border:    lipgloss.Color("#83a598"), // gruvbox aqua (matches secondary)
		Highlight: lipgloss.Color("#fabd2f"), // gruvbox yellow
	}
}

// ThemeConfig mirrors the config.ThemeConfig for applying overrides
type ThemeConfig struct {
	Primary   string
	Secondary string
	Muted     string
	Text      string
	Highlight string
}

// ThemeFromConfig creates a theme with config overrides applied
func ThemeFromConfig(cfg ThemeConfig) *Theme {
	theme := DefaultTheme()

	if cfg.Primary != "" {
		theme.Primary = lipgloss.Color(cfg.Primary)
	}
	if cfg.Secondary != "" {
		theme.Secondary = lipgloss.Color(cfg.Secondary)
		theme.Border = lipgloss.Color(cfg.Secondary) // border follows secondary
	}
	if cfg.Muted != "" {
		theme.Muted = lipgloss.Color(cfg.Muted)
	}
	if cfg.Text != "" {
		theme.Text = lipgloss.Color(cfg.Text)
	}
	if cfg.Highlight != "" {
		theme.Highlight = lipgloss.Color(cfg.Highlight)
	}
	return theme
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer
	theme    *Theme

	Prompt   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Prefix   lipgloss.Style
	Match    lipgloss.Style
	Muted    lipgloss.Style
	Dropdown lipgloss.Style
}

// NewStyles creates styles for the given output and theme
func NewStyles(output io.Writer, theme *Theme) *Styles {
	return newStyles(lipgloss.NewRenderer(output), theme)
}

// PlainStyles creates styles that emit no escape sequences, for piped
// output and tests
func PlainStyles(output io.Writer) *Styles {
	r := lipgloss.NewRenderer(output)
	r.SetColorProfile(termenv.Ascii)
	return newStyles(r, DefaultTheme())
}

func newStyles(r *lipgloss.Renderer, theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Styles{
		renderer: r,
		theme:    theme,

		Prompt: r.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Item: r.NewStyle().
			Foreground(theme.Text),

		Selected: r.NewStyle().
			Foreground(theme.Primary).
			Reverse(true),

		Prefix: r.NewStyle().
			Foreground(theme.Muted),

		Match: r.NewStyle().
			Foreground(theme.Highlight).
			Bold(true),

		Muted: r.NewStyle().
			Foreground(theme.Muted),

		Dropdown: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),
	}
}

// Theme returns the theme the styles were built from
func (s *Styles) Theme() *Theme {
	return s.theme
}
