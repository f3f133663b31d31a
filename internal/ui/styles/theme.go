package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/raphi011/cdh/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // headers, prompt
	Accent  color.Color // selected row, matched characters
	Muted   color.Color // ids, help text
	Normal  color.Color // standard text
	Warning color.Color // stale entries
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

var (
	// DefaultTheme is the default color scheme (dark only)
	DefaultTheme = Theme{
		Primary: lipgloss.Color("62"),  // cyan/teal
		Accent:  lipgloss.Color("212"), // pink/magenta
		Muted:   lipgloss.Color("240"), // dark gray
		Normal:  lipgloss.Color("252"), // light gray
		Warning: lipgloss.Color("214"), // orange
	}

	// NordTheme is based on the Nord color scheme (dark)
	NordTheme = Theme{
		Primary: lipgloss.Color("#88c0d0"), // nord8
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Muted:   lipgloss.Color("#4c566a"), // nord3
		Normal:  lipgloss.Color("#eceff4"), // nord6
		Warning: lipgloss.Color("#ebcb8b"), // nord13
	}

	// NordLightTheme is based on the Nord color scheme (light)
	NordLightTheme = Theme{
		Primary: lipgloss.Color("#5e81ac"), // nord10
		Accent:  lipgloss.Color("#b48ead"), // nord15
		Muted:   lipgloss.Color("#9a9a9a"),
		Normal:  lipgloss.Color("#2e3440"), // nord0
		Warning: lipgloss.Color("#d08770"), // nord12
	}

	// NoneTheme renders without colors. Bold and underline are kept.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Muted:   lipgloss.NoColor{},
		Normal:  lipgloss.NoColor{},
		Warning: lipgloss.NoColor{},
	}
)

var themeFamilies = map[string]themeFamily{
	"none":    {Light: &NoneTheme, Dark: &NoneTheme},
	"default": {Dark: &DefaultTheme},
	"nord":    {Light: &NordLightTheme, Dark: &NordTheme},
}

var currentTheme = DefaultTheme

// hasDarkBackground is replaced in tests.
var hasDarkBackground = func() bool {
	return lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
}

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init selects the theme from config.
// Call this after loading config and before rendering anything.
func Init(cfg config.ThemeConfig) {
	currentTheme = selectTheme(cfg)
	applyTheme(currentTheme)
}

// selectTheme picks the variant for the configured mode. Config validation
// rejects unknown names and modes, so they fall back quietly here.
func selectTheme(cfg config.ThemeConfig) Theme {
	family, ok := themeFamilies[cfg.Name]
	if !ok {
		family = themeFamilies["default"]
	}

	var theme *Theme
	switch cfg.Mode {
	case "light":
		theme = family.Light
	case "dark":
		theme = family.Dark
	default:
		if family.Light == nil || family.Dark == nil {
			// single variant, skip the terminal query
			break
		}
		if hasDarkBackground() {
			theme = family.Dark
		} else {
			theme = family.Light
		}
	}

	if theme == nil {
		if family.Dark != nil {
			theme = family.Dark
		} else {
			theme = family.Light
		}
	}
	return *theme
}

// applyTheme updates the global style variables
func applyTheme(t Theme) {
	Primary = t.Primary
	Accent = t.Accent
	Muted = t.Muted
	Normal = t.Normal
	Warning = t.Warning

	PrimaryStyle = lipgloss.NewStyle().Foreground(t.Primary)
	AccentStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	MutedStyle = lipgloss.NewStyle().Foreground(t.Muted)
	NormalStyle = lipgloss.NewStyle().Foreground(t.Normal)
	WarningStyle = lipgloss.NewStyle().Foreground(t.Warning)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)
}
