package ui

// ThemePreset represents a predefined color theme
type ThemePreset struct {
	Name        string
	Description string
	Config      ThemeConfig
}

// PresetThemeNames defines the display order of themes
var PresetThemeNames = []string{
	"gruvbox",
	"dracula",
	"nord",
	"solarized",
	"monokai",
	"classic",
}

// PresetThemes contains all predefined themes
var PresetThemes = map[string]ThemePreset{
	"classic": {
		Name:        "classic",
		Description: "Classic green terminal style",
		Config: ThemeConfig{
			Primary:   "10",  // bright green
			Secondary: "4",   // blue
			Muted:     "245", // light grey
			Text:      "15",  // white
			Highlight: "11",  // yellow
		},
	},
	"dracula": {
		Name:        "dracula",
		Description: "Popular dark theme with purple accents",
		Config: ThemeConfig{
			Primary:   "#bd93f9", // purple
			Secondary: "#8be9fd", // cyan
			Muted:     "#6272a4", // comment grey
			Text:      "#f8f8f2", // foreground
			Highlight: "#ff79c6", // pink
		},
	},
	"nord": {
		Name:        "nord",
		Description: "Arctic, north-bluish color palette",
		Config: ThemeConfig{
			Primary:   "#88c0d0", // frost cyan
			Secondary: "#81a1c1", // frost blue
			Muted:     "#4c566a", // polar night
			Text:      "#eceff4", // snow storm
			Highlight: "#ebcb8b", // aurora yellow
		},
	},
	"solarized": {
		Name:        "solarized",
		Description: "Precision colors for machines and people",
		Config: ThemeConfig{
			Primary:   "#268bd2", // blue
			Secondary: "#2aa198", // cyan
			Muted:     "#586e75", // base01
			Text:      "#839496", // base0
			Highlight: "#b58900", // yellow
		},
	},
	"monokai": {
		Name:        "monokai",
		Description: "Vibrant colors inspired by Sublime Text",
		Config: ThemeConfig{
			Primary:   "#a6e22e", // green
			Secondary: "#66d9ef", // cyan
			Muted:     "#75715e", // comment
			Text:      "#f8f8f2", // foreground
			Highlight: "#e6db74", // yellow
		},
	},
	"gruvbox": {
		Name:        "gruvbox",
		Description: "Retro groove color scheme (default)",
		Config: ThemeConfig{
			Primary:   "#b8bb26", // green
			Secondary: "#83a598", // aqua
			Muted:     "#928374", // gray
			Text:      "#ebdbb2", // foreground
			Highlight: "#fabd2f", // yellow
		},
	},
}

// GetPresetTheme returns a preset by name, or nil if not found
func GetPresetTheme(name string) *ThemePreset {
	if preset, ok := PresetThemes[name]; ok {
		return &preset
	}
	return nil
}

// MatchPresetTheme finds a preset that matches the given config, or returns
// empty string. An empty config is the default gruvbox theme.
func MatchPresetTheme(cfg ThemeConfig) string {
	if cfg == (ThemeConfig{}) {
		return "gruvbox"
	}
	for name, preset := range PresetThemes {
		if cfg == preset.Config {
			return name
		}
	}
	return ""
}
