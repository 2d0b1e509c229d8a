package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/herogrid/internal/viz"
)

func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("herogrid: %v\n", m.err)
	}
	if m.engine == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteByte('\n')
	if rows := m.screen.heroRows(); rows > 0 {
		b.WriteString(m.hero(rows))
		b.WriteByte('\n')
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) hero(rows int) string {
	hero := m.screen.hero()
	c := viz.NewCanvas(m.screen.cols, rows, m.screen.cellW, m.screen.cellH)
	size := m.engine.Plan().Config.ItemSize
	c.Draw(m.scene.Sprites(m.engine.Tiles(), size), hero.X, hero.Y)
	return c.Render(m.theme)
}

func (m *Model) header() string {
	title := m.styles.Title.Render("herogrid")
	var status string
	switch {
	case m.engine.Closed():
		status = m.styles.Label.Render("closed")
	case m.engine.Dispersed():
		status = m.styles.Warning.Render(m.engine.Phase().String())
	case m.hidden:
		status = m.styles.Label.Render("paused")
	default:
		status = m.styles.Label.Render(viz.Spinner(m.engine.Frames()))
	}
	return m.line(title+"  "+status, m.styles.Hint.Render("q quit · r rebuild · h hide"))
}

func (m *Model) footer() string {
	s := m.engine.State()
	st := m.engine.Stats()
	left := m.styles.Meter(s.Count, m.engine.Threshold())
	if s.Pressed {
		left += " " + m.styles.Warning.Render("pressed")
	}
	right := strings.Join([]string{
		m.styles.Field("tiles", len(m.engine.Tiles())),
		m.styles.Field("peak", fmt.Sprintf("%.1f/%.1f", st.PeakOffset, st.MaxOffset)),
		m.styles.Field("fps", fmt.Sprintf("%.0f", m.fps)),
	}, "  ")
	return m.line(left, right)
}

// line places left and right at the edges of one terminal row.
func (m *Model) line(left, right string) string {
	gap := m.screen.cols - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
