package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/confocal/internal/geometry"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Ellipse   lipgloss.Color
	Hyperbola lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Accent    lipgloss.Color
	Arrow     lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:      "classic",
		Ellipse:   lipgloss.Color(geometry.CoolColor.Hex()),
		Hyperbola: lipgloss.Color(geometry.WarmColor.Hex()),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Accent:    lipgloss.Color("#00cccc"),
		Arrow:     lipgloss.Color("#aaaaaa"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Ellipse:   lipgloss.Color("#00ffff"), // Cyan
		Hyperbola: lipgloss.Color("#ff00ff"), // Magenta
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Accent:    lipgloss.Color("#ffff00"),
		Arrow:     lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Ellipse:   lipgloss.Color("#00ff00"), // Green phosphor
		Hyperbola: lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Accent:    lipgloss.Color("#88ff88"),
		Arrow:     lipgloss.Color("#00cc00"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Ellipse:   lipgloss.Color("#cccccc"),
		Hyperbola: lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Accent:    lipgloss.Color("#0088ff"),
		Arrow:     lipgloss.Color("#cccccc"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Ellipse:   lipgloss.Color("#00a8cc"),
		Hyperbola: lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Accent:    lipgloss.Color("#0077be"),
		Arrow:     lipgloss.Color("#00a8cc"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Ellipse:   lipgloss.Color("#ff9ff3"),
		Hyperbola: lipgloss.Color("#feca57"), // Coral
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Accent:    lipgloss.Color("#ff6b6b"),
		Arrow:     lipgloss.Color("#ffc048"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// InkStyles maps canvas inks to foreground styles.
func (t Theme) InkStyles() map[Ink]lipgloss.Style {
	return map[Ink]lipgloss.Style{
		InkEllipse:   lipgloss.NewStyle().Foreground(t.Ellipse),
		InkHyperbola: lipgloss.NewStyle().Foreground(t.Hyperbola),
	}
}
