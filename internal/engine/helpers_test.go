package engine

import (
	"bytes"
	"log"
	"time"

	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/vmath"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeViewport struct {
	width     float64
	container layout.Rect
	missing   bool
}

func (v *fakeViewport) Width() float64 { return v.width }

func (v *fakeViewport) Container() (layout.Rect, bool) {
	return v.container, !v.missing
}

type flight struct {
	offset vmath.Vec2
	d      time.Duration
}

type fakeSurface struct {
	n       int
	resets  int
	clears  int
	commits int
	offsets map[int]vmath.Vec2
	opacity float64
	flights map[int]flight
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{offsets: map[int]vmath.Vec2{}, flights: map[int]flight{}}
}

func (s *fakeSurface) Reset(n int) {
	s.n = n
	s.resets++
	s.offsets = map[int]vmath.Vec2{}
	s.flights = map[int]flight{}
}

func (s *fakeSurface) Clear() {
	s.n = 0
	s.clears++
	s.offsets = map[int]vmath.Vec2{}
}

func (s *fakeSurface) Commit(i int, offset vmath.Vec2, opacity float64) {
	s.commits++
	s.offsets[i] = offset
	s.opacity = opacity
}

func (s *fakeSurface) Explode(i int, offset vmath.Vec2, d time.Duration) {
	s.flights[i] = flight{offset, d}
}

type harness struct {
	view    *fakeViewport
	surface *fakeSurface
	loop    *sched.Loop
	logs    *bytes.Buffer
	engine  *Engine
}

func newHarness(trigger bool) (*harness, error) {
	h := &harness{
		view: &fakeViewport{
			width:     1280,
			container: layout.Rect{X: 0, Y: 0, W: 1280, H: 600},
		},
		surface: newFakeSurface(),
		loop:    sched.NewLoop(epoch),
		logs:    &bytes.Buffer{},
	}
	e, err := New(Options{
		Viewport: h.view,
		Surface:  h.surface,
		Loop:     h.loop,
		Trigger:  trigger,
		Logger:   log.New(h.logs, "", 0),
	})
	h.engine = e
	return h, err
}

// frames advances the clock one 60Hz frame at a time, ticking the engine.
func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.loop.AdvanceBy(16 * time.Millisecond)
		h.engine.Tick()
	}
}

func (h *harness) click() {
	h.engine.PressDown()
	h.engine.PressUp()
	h.engine.Release()
}

func (h *harness) offsets() []vmath.Vec2 {
	ts := h.engine.Tiles()
	out := make([]vmath.Vec2, len(ts))
	for i, t := range ts {
		out[i] = t.Body.Pos
	}
	return out
}
