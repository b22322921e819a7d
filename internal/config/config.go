package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

const appName = "term-complete"

type Config struct {
	Complete CompleteConfig `mapstructure:"complete" yaml:"complete"`
	Theme    ThemeConfig    `mapstructure:"theme" yaml:"theme"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// CompleteConfig configures the completion engine
type CompleteConfig struct {
	Commands   []string `mapstructure:"commands" yaml:"commands"`       // slash commands offered after a leading "/"
	BasePath   string   `mapstructure:"base_path" yaml:"base_path"`     // directory "@" references resolve against
	Ignore     []string `mapstructure:"ignore" yaml:"ignore,omitempty"` // glob patterns hidden from path completion
	CacheSize  int      `mapstructure:"cache_size" yaml:"cache_size"`   // directory listings kept in memory
	MaxVisible int      `mapstructure:"max_visible" yaml:"max_visible"` // dropdown rows shown at once
}

// ThemeConfig allows customization of dropdown colors
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Primary   string `mapstructure:"primary" yaml:"primary,omitempty"`     // prompt and selected row
	Secondary string `mapstructure:"secondary" yaml:"secondary,omitempty"` // dropdown border
	Muted     string `mapstructure:"muted" yaml:"muted,omitempty"`         // prefixes and hints
	Text      string `mapstructure:"text" yaml:"text,omitempty"`           // candidate labels
	Highlight string `mapstructure:"highlight" yaml:"highlight,omitempty"` // matched characters
}

// LogConfig configures the debug log. The TUI owns the terminal, so logs
// only go to a file.
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file,omitempty"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultCommands are offered when no commands are configured.
var DefaultCommands = []string{
	"/clear",
	"/context",
	"/resume",
	"/worktree start",
	"/worktree finish",
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Complete: CompleteConfig{
			Commands:   slices.Clone(DefaultCommands),
			BasePath:   ".",
			CacheSize:  100,
			MaxVisible: 12,
		},
		Log: LogConfig{Level: "info"},
	}
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	v := viper.GetViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix("TERM_COMPLETE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional - won't error if missing)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Complete.BasePath = expandHome(expandEnv(cfg.Complete.BasePath))
	cfg.Log.File = expandHome(expandEnv(cfg.Log.File))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("complete.commands", d.Complete.Commands)
	v.SetDefault("complete.base_path", d.Complete.BasePath)
	v.SetDefault("complete.cache_size", d.Complete.CacheSize)
	v.SetDefault("complete.max_visible", d.Complete.MaxVisible)
	v.SetDefault("log.level", d.Log.Level)
}

// Validate checks values that would make the engine unusable
func (c *Config) Validate() error {
	if c.Complete.CacheSize < 1 {
		return fmt.Errorf("complete.cache_size must be at least 1, got %d", c.Complete.CacheSize)
	}
	if c.Complete.MaxVisible < 1 {
		return fmt.Errorf("complete.max_visible must be at least 1, got %d", c.Complete.MaxVisible)
	}
	for _, pattern := range c.Complete.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("complete.ignore: invalid pattern %q", pattern)
		}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// expandEnv expands ${VAR} or $VAR in a string
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		varName := s[2 : len(s)-1]
		return os.Getenv(varName)
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

func expandHome(s string) string {
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return s
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return s
	}
	return filepath.Join(home, s[1:])
}

// GetConfigDir returns the XDG config directory for term-complete.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes a starter config to disk
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var commands strings.Builder
	for _, c := range cfg.Complete.Commands {
		fmt.Fprintf(&commands, "    - %q\n", c)
	}

	content := fmt.Sprintf(`complete:
  # Slash commands offered when the prompt starts with "/"
  commands:
%s  # Directory "@" references resolve against
  base_path: %q
  cache_size: %d
  max_visible: %d
  # Glob patterns hidden from @ completion (dotfiles are always hidden)
  # ignore: ["node_modules", "*.pyc"]

# theme:
#   primary: "#b8bb26"
#   highlight: "#fabd2f"

log:
  # file: ~/.local/state/term-complete/debug.log
  level: %s
`, commands.String(), cfg.Complete.BasePath, cfg.Complete.CacheSize, cfg.Complete.MaxVisible, cfg.Log.Level)

	return os.WriteFile(path, []byte(content), 0600)
}
