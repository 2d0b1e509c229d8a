package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/physics"
)

func TestMeanDisplacement(t *testing.T) {
	m := NewMeanDisplacement()
	if m.Value() != 0 {
		t.Errorf("empty value = %v", m.Value())
	}
	m.Observe(physics.Stats{MeanOffset: 2}, input.State{})
	m.Observe(physics.Stats{MeanOffset: 4}, input.State{})
	if m.Value() != 3 {
		t.Errorf("value = %v, want 3", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear")
	}
}

func TestPeakDisplacement(t *testing.T) {
	p := NewPeakDisplacement()
	for _, v := range []float64{3, 9, 1} {
		p.Observe(physics.Stats{PeakOffset: v}, input.State{})
	}
	if p.Value() != 9 {
		t.Errorf("peak = %v", p.Value())
	}
}

func TestKinetic(t *testing.T) {
	k := NewKinetic()
	k.Observe(physics.Stats{KineticSum: 1}, input.State{})
	k.Observe(physics.Stats{KineticSum: 3}, input.State{})
	if k.Value() != 2 || k.Last() != 3 {
		t.Errorf("value = %v last = %v", k.Value(), k.Last())
	}
}

func TestClampRate(t *testing.T) {
	c := NewClampRate()
	c.Observe(physics.Stats{Clamped: 2}, input.State{})
	c.Observe(physics.Stats{}, input.State{})
	c.Observe(physics.Stats{}, input.State{})
	c.Observe(physics.Stats{Clamped: 1}, input.State{})
	if math.Abs(c.Value()-0.5) > 1e-12 {
		t.Errorf("rate = %v", c.Value())
	}
}

func TestRecorder(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time { return now }
	r := NewRecorder(clock, true, Standard()...)

	r.OnFrame(1, physics.Stats{Tiles: 144, MeanOffset: 1}, input.State{Count: 2})
	now = now.Add(500 * time.Millisecond)
	r.OnFrame(2, physics.Stats{Tiles: 144, MeanOffset: 3}, input.State{Count: 2, Pressed: true})

	samples := r.Samples()
	if len(samples) != 2 {
		t.Fatalf("samples = %d", len(samples))
	}
	if samples[1].Time != 0.5 || !samples[1].Pressed || samples[1].Frame != 2 {
		t.Errorf("sample = %+v", samples[1])
	}

	vals := r.Values()
	if vals["mean_displacement"] != 2 {
		t.Errorf("mean = %v", vals["mean_displacement"])
	}
	if vals["live_tiles"] != 144 {
		t.Errorf("live = %v", vals["live_tiles"])
	}

	r.Reset()
	if len(r.Samples()) != 0 || r.Values()["mean_displacement"] != 0 {
		t.Error("reset did not clear")
	}
}

func TestRecorderNotRecording(t *testing.T) {
	r := NewRecorder(nil, false, NewPeakDisplacement())
	r.OnFrame(1, physics.Stats{PeakOffset: 7}, input.State{})
	if len(r.Samples()) != 0 {
		t.Error("should not keep samples")
	}
	if r.Values()["peak_displacement"] != 7 {
		t.Error("metrics should still observe")
	}
}
