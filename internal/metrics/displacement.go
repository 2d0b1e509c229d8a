package metrics

import (
	"math"

	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/physics"
)

// MeanDisplacement is the time average of the per-frame mean tile offset.
type MeanDisplacement struct {
	total   float64
	samples int
}

func NewMeanDisplacement() *MeanDisplacement { return &MeanDisplacement{} }

func (m *MeanDisplacement) Name() string { return "mean_displacement" }

func (m *MeanDisplacement) Observe(st physics.Stats, s input.State) {
	m.total += st.MeanOffset
	m.samples++
}

func (m *MeanDisplacement) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanDisplacement) Reset() {
	m.total = 0
	m.samples = 0
}

// PeakDisplacement is the largest tile offset seen.
type PeakDisplacement struct {
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (p *PeakDisplacement) Name() string { return "peak_displacement" }

func (p *PeakDisplacement) Observe(st physics.Stats, s input.State) {
	p.peak = math.Max(p.peak, st.PeakOffset)
}

func (p *PeakDisplacement) Value() float64 { return p.peak }
func (p *PeakDisplacement) Reset()         { p.peak = 0 }

// ClampRate is the fraction of frames in which at least one tile hit the
// offset ceiling.
type ClampRate struct {
	clamped int
	samples int
}

func NewClampRate() *ClampRate { return &ClampRate{} }

func (c *ClampRate) Name() string { return "clamp_rate" }

func (c *ClampRate) Observe(st physics.Stats, s input.State) {
	c.samples++
	if st.Clamped > 0 {
		c.clamped++
	}
}

func (c *ClampRate) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.clamped) / float64(c.samples)
}

func (c *ClampRate) Reset() {
	c.clamped = 0
	c.samples = 0
}
