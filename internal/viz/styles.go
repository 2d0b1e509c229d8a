package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the chrome styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Hint    lipgloss.Style
	Warning lipgloss.Style
	Bar     lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Bar:     lipgloss.NewStyle().Foreground(t.Tile),
	}
}

// Field renders "label value".
func (s Styles) Field(label string, value any) string {
	return s.Label.Render(label+" ") + s.Value.Render(fmt.Sprint(value))
}

// Meter renders progress toward the dispersal threshold, one pip per press.
func (s Styles) Meter(count, threshold int) string {
	if threshold <= 0 {
		return ""
	}
	filled := max(0, min(count, threshold))
	bar := strings.Repeat("●", filled) + strings.Repeat("○", threshold-filled)
	if filled >= threshold-1 {
		return s.Warning.Render(bar)
	}
	return s.Bar.Render(bar)
}

// Spinner returns one frame of a braille spinner.
func Spinner(frame uint64) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%uint64(len(spinners))]
}
