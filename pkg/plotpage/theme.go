package plotpage

// Theme is a page colour scheme.
type Theme string

const (
	// ThemeLight is the light colour scheme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark colour scheme.
	ThemeDark Theme = "dark"
)

// ParseTheme maps a configuration value onto a Theme. Unknown values fall
// back to ThemeLight.
func ParseTheme(name string) Theme {
	if Theme(name) == ThemeDark {
		return ThemeDark
	}

	return ThemeLight
}

// ThemeConfig holds the colour values used by templates and chart options.
type ThemeConfig struct {
	Background    string
	Surface       string
	Border        string
	TextPrimary   string
	TextSecondary string
	TextMuted     string
	Accent        string
	AccentSubtle  string

	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Heat is the low/mid/high ramp used by heat maps.
	Heat [3]string
}

// GetThemeConfig returns the configuration for a theme.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

var lightTheme = ThemeConfig{
	Background:    "#f8fafc", // slate-50.
	Surface:       "#ffffff",
	Border:        "#e2e8f0", // slate-200.
	TextPrimary:   "#0f172a", // slate-900.
	TextSecondary: "#334155", // slate-700.
	TextMuted:     "#64748b", // slate-500.
	Accent:        "#4f46e5", // indigo-600.
	AccentSubtle:  "#e0e7ff", // indigo-100.

	ChartBackground: "transparent",
	ChartGrid:       "#e2e8f0",
	ChartAxis:       "#94a3b8", // slate-400.
	ChartText:       "#334155",
	ChartTextMuted:  "#64748b",

	Heat: [3]string{"#e35d5d", "#f1f5f9", "#4f46e5"},
}

var darkTheme = ThemeConfig{
	Background:    "#020617", // slate-950.
	Surface:       "#0f172a", // slate-900.
	Border:        "#334155", // slate-700.
	TextPrimary:   "#f8fafc",
	TextSecondary: "#cbd5e1", // slate-300.
	TextMuted:     "#94a3b8",
	Accent:        "#818cf8", // indigo-400.
	AccentSubtle:  "#1e1b4b", // indigo-950.

	ChartBackground: "transparent",
	ChartGrid:       "#334155",
	ChartAxis:       "#475569", // slate-600.
	ChartText:       "#cbd5e1",
	ChartTextMuted:  "#94a3b8",

	Heat: [3]string{"#f87171", "#1e293b", "#818cf8"},
}
