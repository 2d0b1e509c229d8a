// Package metrics observes engine frames and reduces them to numbers.
package metrics

import (
	"time"

	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/physics"
)

// Metric folds a stream of frames into one value.
type Metric interface {
	Name() string
	Observe(st physics.Stats, s input.State)
	Value() float64
	Reset()
}

// Sample is one recorded frame.
type Sample struct {
	Frame      uint64
	Time       float64
	Count      int
	Pressed    bool
	Tiles      int
	Opacity    float64
	MaxOffset  float64
	MeanOffset float64
	PeakOffset float64
	Kinetic    float64
	Influenced int
	Clamped    int
}

// Recorder is an engine observer. It feeds every frame to its metrics and,
// when recording, keeps one sample per frame.
type Recorder struct {
	clock   func() time.Time
	start   time.Time
	metrics []Metric
	record  bool
	samples []Sample
}

// NewRecorder returns a recorder timing samples by clock. A nil clock means
// wall time.
func NewRecorder(clock func() time.Time, record bool, ms ...Metric) *Recorder {
	if clock == nil {
		clock = time.Now
	}
	return &Recorder{clock: clock, start: clock(), metrics: ms, record: record}
}

// Standard returns the metrics every run reports.
func Standard() []Metric {
	return []Metric{
		NewMeanDisplacement(),
		NewPeakDisplacement(),
		NewKinetic(),
		NewLiveTiles(),
		NewClampRate(),
	}
}

func (r *Recorder) OnFrame(frame uint64, st physics.Stats, s input.State) {
	for _, m := range r.metrics {
		m.Observe(st, s)
	}
	if !r.record {
		return
	}
	r.samples = append(r.samples, Sample{
		Frame:      frame,
		Time:       r.clock().Sub(r.start).Seconds(),
		Count:      s.Count,
		Pressed:    s.Pressed,
		Tiles:      st.Tiles,
		Opacity:    st.Opacity,
		MaxOffset:  st.MaxOffset,
		MeanOffset: st.MeanOffset,
		PeakOffset: st.PeakOffset,
		Kinetic:    st.KineticSum,
		Influenced: st.Influenced,
		Clamped:    st.Clamped,
	})
}

func (r *Recorder) Samples() []Sample { return r.samples }

func (r *Recorder) Metrics() []Metric { return r.metrics }

// Values returns the current value of every metric by name.
func (r *Recorder) Values() map[string]float64 {
	out := make(map[string]float64, len(r.metrics))
	for _, m := range r.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (r *Recorder) Reset() {
	for _, m := range r.metrics {
		m.Reset()
	}
	r.samples = nil
	r.start = r.clock()
}
