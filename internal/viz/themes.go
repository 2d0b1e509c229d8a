package viz

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of a host.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Tile       lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeMono = Theme{
		Name:       "mono",
		Background: lipgloss.Color("#000000"),
		Tile:       lipgloss.Color("#ffffff"),
		Text:       lipgloss.Color("#e0e0e0"),
		Muted:      lipgloss.Color("#666666"),
		Accent:     lipgloss.Color("#ffffff"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeEmber = Theme{
		Name:       "ember",
		Background: lipgloss.Color("#1a0a05"),
		Tile:       lipgloss.Color("#ff7a2f"),
		Text:       lipgloss.Color("#ffe8d6"),
		Muted:      lipgloss.Color("#8a5a44"),
		Accent:     lipgloss.Color("#ffc857"),
		Warning:    lipgloss.Color("#ff3b30"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: lipgloss.Color("#001a33"),
		Tile:       lipgloss.Color("#00a8cc"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Accent:     lipgloss.Color("#ffd700"),
		Warning:    lipgloss.Color("#ff4444"),
	}
)

// Themes maps theme names to themes.
var Themes = map[string]Theme{
	"mono":  ThemeMono,
	"ember": ThemeEmber,
	"ocean": ThemeOcean,
}

// GetTheme returns a theme by name, defaulting to mono.
func GetTheme(name string) Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return ThemeMono
}

func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for k := range Themes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
