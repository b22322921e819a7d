package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/samsaffron/term-complete/internal/config"
	"github.com/samsaffron/term-complete/internal/debuglog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("base-path", "", "Directory @ references resolve against (default \".\")")
	flags.StringArray("command", nil, "Slash command to offer, repeatable (replaces the configured list)")
	flags.Int("cache-size", 0, "Number of directory listings kept in memory (default 100)")
	flags.String("log-file", "", "Append debug logs to this file")
	flags.String("log-level", "", "Log level: debug, info, warn, error")

	bindFlag("complete.base_path", "base-path")
	bindFlag("complete.commands", "command")
	bindFlag("complete.cache_size", "cache-size")
	bindFlag("log.file", "log-file")
	bindFlag("log.level", "log-level")
}

func bindFlag(key, name string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name)); err != nil {
		panic(err)
	}
}

var rootCmd = &cobra.Command{
	Use:   "term-complete",
	Short: "Inline slash-command and @path completion for a terminal prompt",
	Long: `term-complete is a single-line prompt with inline completion.

Start the input with "/" to pick a slash command, or type "@" to complete
a file path relative to the base path.

Examples:
  term-complete                              # interactive prompt
  term-complete --base-path ~/src/project
  term-complete complete "see @src/ma"       # list candidates
  term-complete complete --accept "/cl"      # print the completed buffer
  term-complete config show                  # effective configuration`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runPrompt,
}

var (
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and opens the debug log for every command.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}
	if logger, logCloser, err = debuglog.Open(cfg.Log.File, cfg.Log.Level); err != nil {
		return err
	}
	slog.SetDefault(logger)
	logger.Debug("config loaded", "base_path", cfg.Complete.BasePath, "commands", len(cfg.Complete.Commands))
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if logCloser != nil {
		logCloser.Close()
	}
}
