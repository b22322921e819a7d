package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samsaffron/term-complete/internal/complete"
	"github.com/samsaffron/term-complete/internal/config"
	"github.com/samsaffron/term-complete/internal/tui/prompt"
	"github.com/samsaffron/term-complete/internal/ui"
	"github.com/spf13/cobra"
)

var configThemeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Select a dropdown color theme",
	Long: `Select from predefined color themes. Without a name an interactive
selector shows a live preview of the completion dropdown.

Available themes: gruvbox (default), dracula, nord, solarized, monokai, classic`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: ui.PresetThemeNames,
	RunE:      configTheme,
}

func init() {
	configCmd.AddCommand(configThemeCmd)
}

func configTheme(cmd *cobra.Command, args []string) error {
	var selected string
	if len(args) == 1 {
		selected = args[0]
	} else {
		current := ui.MatchPresetTheme(themeConfig(cfg.Theme))
		var err error
		if selected, err = runThemeSelector(current); err != nil {
			return err
		}
		if selected == "" {
			return nil // cancelled
		}
	}

	preset := ui.GetPresetTheme(selected)
	if preset == nil {
		return fmt.Errorf("unknown theme: %s", selected)
	}
	if err := saveThemeToConfig(preset.Config); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to: %s\n", selected)
	return nil
}

// saveThemeToConfig writes the theme colors into config.yaml
func saveThemeToConfig(t ui.ThemeConfig) error {
	keys := []string{"theme.primary", "theme.secondary", "theme.muted", "theme.text", "theme.highlight"}
	return config.SetValues(map[string]string{
		"theme.primary":   t.Primary,
		"theme.secondary": t.Secondary,
		"theme.muted":     t.Muted,
		"theme.text":      t.Text,
		"theme.highlight": t.Highlight,
	}, keys...)
}

func themeConfig(t config.ThemeConfig) ui.ThemeConfig {
	return ui.ThemeConfig{
		Primary:   t.Primary,
		Secondary: t.Secondary,
		Muted:     t.Muted,
		Text:      t.Text,
		Highlight: t.Highlight,
	}
}

// previewItems is the sample completion shown in the theme preview.
func previewItems() []complete.RankedCandidate {
	return complete.Rank("ma", []complete.Candidate{
		complete.PathCandidate("manual", true),
		complete.PathCandidate("main.go", false),
		complete.PathCandidate("Makefile", false),
		complete.PathCandidate("README.md", false),
	})
}

// themeSelectorModel is the bubbletea model for theme selection
type themeSelectorModel struct {
	presets      []ui.ThemePreset
	cursor       int
	currentTheme string
	selected     string
	cancelled    bool
}

func newThemeSelectorModel(currentTheme string) themeSelectorModel {
	var presets []ui.ThemePreset
	for _, name := range ui.PresetThemeNames {
		if preset := ui.GetPresetTheme(name); preset != nil {
			presets = append(presets, *preset)
		}
	}

	// Find cursor position for current theme
	cursor := 0
	for i, p := range presets {
		if p.Name == currentTheme {
			cursor = i
			break
		}
	}

	return themeSelectorModel{
		presets:      presets,
		cursor:       cursor,
		currentTheme: currentTheme,
	}
}

func (m themeSelectorModel) Init() tea.Cmd {
	return nil
}

func (m themeSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.cursor < len(m.presets)-1 {
				m.cursor++
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			m.selected = m.presets[m.cursor].Name
			return m, tea.Quit
		case key.Matches(msg, key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"))):
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m themeSelectorModel) View() string {
	if len(m.presets) == 0 {
		return "No themes available"
	}

	hovered := m.presets[m.cursor]
	previewTheme := ui.ThemeFromConfig(hovered.Config)

	var list strings.Builder
	list.WriteString(lipgloss.NewStyle().Bold(true).Render("Select Theme"))
	list.WriteString("\n\n")
	for i, preset := range m.presets {
		cursor := "  "
		if i == m.cursor {
			cursor = "❯ "
		}
		label := preset.Name
		if preset.Name == m.currentTheme {
			label += " (current)"
		}
		if i == m.cursor {
			list.WriteString(lipgloss.NewStyle().Bold(true).Foreground(previewTheme.Primary).Render(cursor + label))
		} else {
			list.WriteString(cursor + label)
		}
		list.WriteString("\n")
	}
	list.WriteString("\n")
	list.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("↑/↓ navigate · enter select · esc cancel"))

	listCol := lipgloss.NewStyle().Width(30).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, listCol, "  ", renderThemePreview(previewTheme, hovered))
}

// renderThemePreview shows a sample prompt and dropdown in the theme's colors
func renderThemePreview(theme *ui.Theme, preset ui.ThemePreset) string {
	styles := ui.NewStyles(os.Stdout, theme)

	var b strings.Builder
	b.WriteString(styles.Item.Bold(true).Render("Preview: "+preset.Name) + "\n")
	b.WriteString(styles.Muted.Render(preset.Description) + "\n\n")
	b.WriteString(styles.Prompt.Render("❯ ") + styles.Item.Render("open @src/ma") + "\n")
	b.WriteString(prompt.Preview(styles, previewItems(), 0, 5))
	return b.String()
}

// runThemeSelector runs the interactive theme selector and returns the selected theme name
func runThemeSelector(currentTheme string) (string, error) {
	// Try to use /dev/tty for proper terminal handling
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		tty = nil
	}

	var opts []tea.ProgramOption
	if tty != nil {
		defer tty.Close()
		opts = append(opts, tea.WithInput(tty), tea.WithOutput(tty))
	}

	finalModel, err := tea.NewProgram(newThemeSelectorModel(currentTheme), opts...).Run()
	if err != nil {
		return "", err
	}

	m := finalModel.(themeSelectorModel)
	if m.cancelled {
		return "", nil
	}
	return m.selected, nil
}
