package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// shades by increasing coverage
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Canvas rasterises pixel-space squares into terminal cells. Each cell covers
// CellW x CellH pixels and records how much of it is covered and how opaque
// the most opaque square over it is.
type Canvas struct {
	Width, Height int
	CellW, CellH  float64

	cover []float64
	alpha []float64
}

func NewCanvas(w, h int, cellW, cellH float64) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{
		Width:  w,
		Height: h,
		CellW:  cellW,
		CellH:  cellH,
		cover:  make([]float64, w*h),
		alpha:  make([]float64, w*h),
	}
}

func (c *Canvas) Clear() {
	clear(c.cover)
	clear(c.alpha)
}

// Fill covers the pixel rectangle [x0,x1)x[y0,y1) at the given opacity.
func (c *Canvas) Fill(x0, y0, x1, y1, opacity float64) {
	if c.CellW <= 0 || c.CellH <= 0 || x1 <= x0 || y1 <= y0 || opacity <= 0 {
		return
	}
	c0 := max(0, int(math.Floor(x0/c.CellW)))
	c1 := min(c.Width-1, int(math.Floor((x1-1e-9)/c.CellW)))
	r0 := max(0, int(math.Floor(y0/c.CellH)))
	r1 := min(c.Height-1, int(math.Floor((y1-1e-9)/c.CellH)))
	area := c.CellW * c.CellH
	for r := r0; r <= r1; r++ {
		cy0 := float64(r) * c.CellH
		oy := math.Min(y1, cy0+c.CellH) - math.Max(y0, cy0)
		for col := c0; col <= c1; col++ {
			cx0 := float64(col) * c.CellW
			ox := math.Min(x1, cx0+c.CellW) - math.Max(x0, cx0)
			if ox <= 0 || oy <= 0 {
				continue
			}
			i := r*c.Width + col
			c.cover[i] = math.Min(1, c.cover[i]+ox*oy/area)
			c.alpha[i] = math.Max(c.alpha[i], opacity)
		}
	}
}

// Draw fills one square per sprite, shifted by origin (the canvas top-left in
// viewport pixels).
func (c *Canvas) Draw(sprites []Sprite, originX, originY float64) {
	for _, s := range sprites {
		h := s.Size / 2
		x, y := s.Center.X-originX, s.Center.Y-originY
		c.Fill(x-h, y-h, x+h, y+h, s.Opacity)
	}
}

// Cell returns coverage and opacity of a cell.
func (c *Canvas) Cell(col, row int) (cover, alpha float64) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return 0, 0
	}
	i := row*c.Width + col
	return c.cover[i], c.alpha[i]
}

// Shade maps coverage to a block glyph.
func Shade(cover float64) rune {
	if cover <= 0 {
		return shades[0]
	}
	i := int(math.Ceil(cover * float64(len(shades)-1)))
	return shades[min(i, len(shades)-1)]
}

// Blend mixes the tile color into the background at alpha.
func Blend(bg, fg lipgloss.Color, alpha float64) lipgloss.Color {
	b, err := colorful.Hex(string(bg))
	if err != nil {
		b = colorful.Color{}
	}
	f, err := colorful.Hex(string(fg))
	if err != nil {
		f = colorful.Color{R: 1, G: 1, B: 1}
	}
	alpha = math.Max(0, math.Min(1, alpha))
	return lipgloss.Color(b.BlendRgb(f, alpha).Clamped().Hex())
}

// Render draws the canvas with the theme. Runs of equal cells share one style.
func (c *Canvas) Render(t Theme) string {
	base := lipgloss.NewStyle().Background(t.Background)
	var sb strings.Builder
	for r := 0; r < c.Height; r++ {
		var run strings.Builder
		var cur lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(base.Foreground(cur).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.Width; col++ {
			cover, alpha := c.Cell(col, r)
			ch := Shade(cover)
			fg := t.Background
			if ch != ' ' {
				fg = Blend(t.Background, t.Tile, alpha)
			}
			if fg != cur {
				flush()
				cur = fg
			}
			run.WriteRune(ch)
		}
		flush()
		if r < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// String renders the glyphs without color.
func (c *Canvas) String() string {
	var sb strings.Builder
	for r := 0; r < c.Height; r++ {
		for col := 0; col < c.Width; col++ {
			cover, _ := c.Cell(col, r)
			sb.WriteRune(Shade(cover))
		}
		if r < c.Height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
