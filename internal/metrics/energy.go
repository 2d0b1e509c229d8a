package metrics

import (
	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/physics"
)

// Kinetic is the mean kinetic energy of the grid per frame, taking every
// tile as unit mass.
type Kinetic struct {
	total   float64
	last    float64
	samples int
}

func NewKinetic() *Kinetic { return &Kinetic{} }

func (k *Kinetic) Name() string { return "kinetic_energy" }

func (k *Kinetic) Observe(st physics.Stats, s input.State) {
	k.last = st.KineticSum
	k.total += k.last
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Last is the energy of the most recent frame.
func (k *Kinetic) Last() float64 { return k.last }

func (k *Kinetic) Reset() {
	k.total = 0
	k.last = 0
	k.samples = 0
}

// LiveTiles is the tile count of the most recent frame.
type LiveTiles struct {
	n int
}

func NewLiveTiles() *LiveTiles { return &LiveTiles{} }

func (l *LiveTiles) Name() string                            { return "live_tiles" }
func (l *LiveTiles) Observe(st physics.Stats, s input.State) { l.n = st.Tiles }
func (l *LiveTiles) Value() float64                          { return float64(l.n) }
func (l *LiveTiles) Reset()                                  { l.n = 0 }
