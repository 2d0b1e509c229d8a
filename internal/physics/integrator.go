package physics

import (
	"math"

	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

// Sink receives the rendered transform of each tile.
type Sink interface {
	Commit(index int, offset vmath.Vec2, opacity float64)
}

// Frame is everything a step reads besides the tiles themselves.
type Frame struct {
	ViewportWidth float64
	Input         input.State
}

// Stats summarises one step.
type Stats struct {
	Tiles      int
	Radius     float64
	MaxOffset  float64
	Opacity    float64
	Influenced int
	Clamped    int
	PeakOffset float64
	MeanOffset float64
	KineticSum float64
}

type Integrator struct {
	params Params
	tiers  layout.Tiers
}

func NewIntegrator(params Params, tiers layout.Tiers) *Integrator {
	return &Integrator{params: params, tiers: tiers}
}

func (in *Integrator) Params() Params { return in.params }

// Step advances every tile by one frame and commits the result to sink.
// sink may be nil.
func (in *Integrator) Step(f Frame, ts []tiles.Tile, sink Sink) Stats {
	cfg := in.tiers.Select(f.ViewportWidth)
	radius := cfg.ItemSize
	count := f.Input.Count
	mult := Multiplier(count)
	maxOffset := in.params.MaxOffset(count)
	opacity := in.params.Opacity(count)

	st := Stats{
		Tiles:     len(ts),
		Radius:    radius,
		MaxOffset: maxOffset,
		Opacity:   opacity,
	}

	var total float64
	for i := range ts {
		t := &ts[i]

		force, inside := in.Force(t, f.Input, radius, mult)
		if inside {
			st.Influenced++
		}
		in.Integrate(&t.Body, force)
		if Clamp(&t.Body, maxOffset, in.params.ClampDamp) {
			st.Clamped++
		}

		d := t.Body.Pos.Len()
		total += d
		if d > st.PeakOffset {
			st.PeakOffset = d
		}
		st.KineticSum += 0.5 * t.Body.Vel.LenSq()

		if sink != nil {
			sink.Commit(t.Index, t.Body.Pos, opacity)
		}
	}
	if len(ts) > 0 {
		st.MeanOffset = total / float64(len(ts))
	}
	return st
}

// Force is the force on a tile this frame. inside reports whether the tile
// is within the pointer's radius of influence.
func (in *Integrator) Force(t *tiles.Tile, s input.State, radius, mult float64) (force vmath.Vec2, inside bool) {
	d := s.Pointer.Sub(t.Center())
	distSq := d.LenSq()

	if distSq < radius*radius {
		dist := math.Sqrt(distSq)
		dir, ok := d.Unit()
		if !ok {
			return vmath.Vec2{}, true
		}
		strength := (radius - dist) / radius
		force = dir.Scale(strength * in.params.BaseForce * mult)
		if s.Pressed {
			force = force.Neg()
		}
		return force, true
	}

	return t.Body.Pos.Scale(-in.params.Restore), false
}

// Integrate applies force, damping and velocity to a body.
func (in *Integrator) Integrate(b *tiles.Body, force vmath.Vec2) {
	b.Vel = b.Vel.Add(force).Scale(in.params.Damping)
	b.Pos = b.Pos.Add(b.Vel)
}

// Clamp pulls a body back onto the circle of radius maxOffset when it has
// left it, scaling its velocity by damp. It reports whether it clamped.
func Clamp(b *tiles.Body, maxOffset, damp float64) bool {
	distSq := b.Pos.LenSq()
	if distSq <= maxOffset*maxOffset {
		return false
	}
	dist := math.Sqrt(distSq)
	b.Pos = b.Pos.Scale(maxOffset / dist)
	b.Vel = b.Vel.Scale(damp)
	return true
}
