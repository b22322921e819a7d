package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	dir := t.TempDir()
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(newTestViper(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(DefaultCommands, cfg.Complete.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if cfg.Complete.BasePath != "." {
		t.Errorf("base_path=%q, want %q", cfg.Complete.BasePath, ".")
	}
	if cfg.Complete.CacheSize != 100 {
		t.Errorf("cache_size=%d, want 100", cfg.Complete.CacheSize)
	}
	if cfg.Complete.MaxVisible != 12 {
		t.Errorf("max_visible=%d, want 12", cfg.Complete.MaxVisible)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("log.level=%q, want info", cfg.Log.Level)
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/project")
	v := newTestViper(t, `
complete:
  commands: ["/a", "/b"]
  base_path: $PROJECT_ROOT
  cache_size: 5
theme:
  highlight: "#ff0000"
`)
	cfg, err := load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"/a", "/b"}, cfg.Complete.Commands); diff != "" {
		t.Errorf("commands mismatch (-want +got):\n%s", diff)
	}
	if cfg.Complete.BasePath != "/srv/project" {
		t.Errorf("base_path=%q, want /srv/project", cfg.Complete.BasePath)
	}
	if cfg.Complete.CacheSize != 5 {
		t.Errorf("cache_size=%d, want 5", cfg.Complete.CacheSize)
	}
	if cfg.Theme.Highlight != "#ff0000" {
		t.Errorf("theme.highlight=%q", cfg.Theme.Highlight)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TERM_COMPLETE_COMPLETE_CACHE_SIZE", "7")
	cfg, err := load(newTestViper(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Complete.CacheSize != 7 {
		t.Errorf("cache_size=%d, want 7", cfg.Complete.CacheSize)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []string{
		"complete:\n  cache_size: 0\n",
		"complete:\n  max_visible: -1\n",
		"log:\n  level: loud\n",
		"complete:\n  ignore: [\"[\"]\n",
	}
	for _, yaml := range tests {
		if _, err := load(newTestViper(t, yaml)); err == nil {
			t.Errorf("load(%q) succeeded, want error", yaml)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/logs/x.log"); got != filepath.Join(home, "logs", "x.log") {
		t.Errorf("expandHome=%q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome changed absolute path: %q", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := &Config{
		Complete: CompleteConfig{Commands: []string{"/x", "/y z"}, BasePath: "/tmp", CacheSize: 9, MaxVisible: 4},
		Log:      LogConfig{Level: "debug"},
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	got, err := load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg.Complete, got.Complete); diff != "" {
		t.Errorf("complete section mismatch (-want +got):\n%s", diff)
	}
	if got.Log.Level != "debug" {
		t.Errorf("log.level=%q, want debug", got.Log.Level)
	}
}

func TestSetValuesKeepsComments(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := Save(Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	err := SetValues(map[string]string{
		"complete.cache_size": "7",
		"theme.highlight":     "#ff0000",
	}, "complete.cache_size", "theme.highlight")
	if err != nil {
		t.Fatalf("SetValues: %v", err)
	}

	path, err := GetConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Slash commands offered") {
		t.Errorf("comment lost:\n%s", data)
	}

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := load(v)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Complete.CacheSize != 7 {
		t.Errorf("cache_size=%d, want 7", cfg.Complete.CacheSize)
	}
	if cfg.Theme.Highlight != "#ff0000" {
		t.Errorf("theme.highlight=%q, want #ff0000", cfg.Theme.Highlight)
	}
	if diff := cmp.Diff(DefaultCommands, cfg.Complete.Commands); diff != "" {
		t.Errorf("commands changed (-want +got):\n%s", diff)
	}
}

func TestSetValuesCreatesFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := SetValues(map[string]string{"log.level": "debug"}); err != nil {
		t.Fatalf("SetValues: %v", err)
	}
	if !Exists() {
		t.Fatal("config file not created")
	}
}
