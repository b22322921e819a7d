package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samsaffron/term-complete/internal/cache"
	"github.com/samsaffron/term-complete/internal/config"
	"github.com/samsaffron/term-complete/internal/tui/prompt"
	"github.com/samsaffron/term-complete/internal/ui"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactive prompt with / and @ completion",
	Long: `Open the interactive prompt. Lines sent with enter are printed to
stdout when the prompt exits.

Keys:
  tab / enter    accept the highlighted completion
  up / down      move through completions
  esc            dismiss completions
  enter          send the line when no completion is open
  ctrl+j         insert a newline
  ctrl+c         quit`,
	Args: cobra.NoArgs,
	RunE: runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	dirs, err := cache.NewDirs(cfg.Complete.CacheSize)
	if err != nil {
		return err
	}
	m, err := prompt.New(prompt.Options{
		Commands:   cfg.Complete.Commands,
		BasePath:   cfg.Complete.BasePath,
		Ignore:     cfg.Complete.Ignore,
		Dirs:       dirs,
		MaxVisible: cfg.Complete.MaxVisible,
		Styles:     ui.NewStyles(os.Stdout, themeFromConfig(cfg.Theme)),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, line := range m.Submitted() {
		fmt.Fprintln(out, line)
	}
	return nil
}

func themeFromConfig(t config.ThemeConfig) *ui.Theme {
	return ui.ThemeFromConfig(themeConfig(t))
}
