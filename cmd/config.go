package cmd

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/samsaffron/term-complete/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage term-complete configuration",
	Long: `View or edit your term-complete configuration.

Examples:
  term-complete config                     # show current config
  term-complete config edit                # edit in $EDITOR
  term-complete config reset               # reset to defaults
  term-complete config completion zsh      # generate shell completions`,
	RunE: configShow, // Default to show
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	RunE:  configShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file in $EDITOR",
	RunE:  configEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	RunE:  configPath,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	Long:  `Reset the configuration file to default values. This will overwrite any existing configuration.`,
	RunE:  configReset,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value while preserving comments.

Examples:
  term-complete config set complete.base_path ~/src/project
  term-complete config set complete.max_visible 8
  term-complete config set log.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: configSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get an effective configuration value, after defaults, the config
file, environment and flags are applied.

Examples:
  term-complete config get complete.commands
  term-complete config get complete.cache_size`,
	Args: cobra.ExactArgs(1),
	RunE: configGet,
}

var configCompletionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script.

Examples:
  term-complete config completion bash > /etc/bash_completion.d/term-complete
  term-complete config completion zsh > "${fpath[1]}/_term-complete"
  term-complete config completion fish > ~/.config/fish/completions/term-complete.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE:      configCompletion,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configCompletionCmd)
}

func configShow(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return writeConfig(cmd.OutOrStdout(), cfg, configPath, config.Exists())
}

func writeConfig(w io.Writer, c *config.Config, path string, exists bool) error {
	if exists {
		fmt.Fprintf(w, "# %s\n\n", path)
	} else {
		fmt.Fprintf(w, "# No config file (using defaults)\n")
		fmt.Fprintf(w, "# Create one at: %s\n\n", path)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

func configEdit(cmd *cobra.Command, args []string) error {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	// Create default config if it doesn't exist
	if !config.Exists() {
		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
	}

	// Get editor from environment
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = "vi"
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr
	return editorCmd.Run()
}

func configPath(cmd *cobra.Command, args []string) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configReset(cmd *cobra.Command, args []string) error {
	if err := config.Save(config.Default()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Config reset to defaults: %s\n", path)
	return nil
}

// configSet sets a configuration value while preserving comments
func configSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := config.SetValues(map[string]string{key: value}); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
	return nil
}

// configGet prints the effective value of key
func configGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return fmt.Errorf("unknown config key: %s", key)
	}
	out := cmd.OutOrStdout()
	switch v := viper.Get(key).(type) {
	case []string:
		for _, s := range v {
			fmt.Fprintln(out, s)
		}
	case []any:
		for _, s := range v {
			fmt.Fprintln(out, s)
		}
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}

func configCompletion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	switch args[0] {
	case "bash":
		return rootCmd.GenBashCompletion(out)
	case "zsh":
		return rootCmd.GenZshCompletion(out)
	case "fish":
		return rootCmd.GenFishCompletion(out, true)
	case "powershell":
		return rootCmd.GenPowerShellCompletionWithDesc(out)
	}
	return nil
}
