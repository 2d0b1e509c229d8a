// Package layout sizes the tile grid from the viewport and container geometry.
package layout

import (
	"math"

	"github.com/san-kum/herogrid/internal/vmath"
)

// GridConfig is the tile geometry for one viewport width, in pixels.
type GridConfig struct {
	ItemSize float64 `yaml:"item_size"`
	Gap      float64 `yaml:"gap"`
	Padding  float64 `yaml:"padding"`
}

// Tier applies its GridConfig to viewports up to and including MaxWidth.
// A MaxWidth of 0 means unbounded.
type Tier struct {
	MaxWidth   float64 `yaml:"max_width"`
	GridConfig `yaml:",inline"`
}

// Tiers is an ordered breakpoint table, narrowest first.
type Tiers []Tier

const (
	MobileMax = 768
	TabletMax = 1024
)

var (
	Mobile  = GridConfig{ItemSize: 40, Gap: 6, Padding: 6}
	Tablet  = GridConfig{ItemSize: 50, Gap: 7, Padding: 7}
	Desktop = GridConfig{ItemSize: 60, Gap: 8, Padding: 8}

	Default = Tiers{
		{MaxWidth: MobileMax, GridConfig: Mobile},
		{MaxWidth: TabletMax, GridConfig: Tablet},
		{GridConfig: Desktop},
	}
)

// Select picks the default tier for a viewport width.
func Select(viewportWidth float64) GridConfig {
	return Default.Select(viewportWidth)
}

// Select returns the first tier whose MaxWidth covers the width. The last
// tier catches everything wider; an empty table falls back to Default.
func (t Tiers) Select(viewportWidth float64) GridConfig {
	if len(t) == 0 {
		return Default.Select(viewportWidth)
	}
	for _, tier := range t {
		if tier.MaxWidth > 0 && viewportWidth <= tier.MaxWidth {
			return tier.GridConfig
		}
	}
	return t[len(t)-1].GridConfig
}

// Rect is an axis-aligned box in viewport coordinates.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Min() vmath.Vec2 { return vmath.V(r.X, r.Y) }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p vmath.Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
}

// Count is how many cells of size fit in available when cells are separated
// by gap. The last cell needs no trailing gap, hence the +gap term.
func Count(available, size, gap float64) int {
	if size+gap <= 0 {
		return 0
	}
	n := math.Floor((available + gap) / (size + gap))
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	return int(n)
}

// Plan is the grid fitted into a container.
type Plan struct {
	Config   GridConfig
	Interior Rect
	Columns  int
	Rows     int
}

// Fit computes columns and rows for a container.
func Fit(bounds Rect, cfg GridConfig) Plan {
	interior := bounds.Inset(cfg.Padding)
	p := Plan{Config: cfg, Interior: interior}
	if interior.W <= 0 || interior.H <= 0 {
		return p
	}
	p.Columns = Count(interior.W, cfg.ItemSize, cfg.Gap)
	p.Rows = Count(interior.H, cfg.ItemSize, cfg.Gap)
	if p.Columns == 0 || p.Rows == 0 {
		p.Columns, p.Rows = 0, 0
	}
	return p
}

// Len is the number of cells in the plan.
func (p Plan) Len() int { return p.Columns * p.Rows }

// Center is the center of cell i, laid out row-major.
func (p Plan) Center(i int) vmath.Vec2 {
	col := i % p.Columns
	row := i / p.Columns
	pitch := p.Config.ItemSize + p.Config.Gap
	half := p.Config.ItemSize / 2
	return vmath.V(
		p.Interior.X+float64(col)*pitch+half,
		p.Interior.Y+float64(row)*pitch+half,
	)
}
