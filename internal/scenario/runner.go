package scenario

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/explode"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/metrics"
	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/viz"
	"github.com/san-kum/herogrid/internal/vmath"
)

// Epoch is the virtual start time of every run.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Viewport is a headless page whose hero section fills the viewport.
type Viewport struct {
	W, H float64
}

func (v *Viewport) Width() float64 { return v.W }

func (v *Viewport) Container() (layout.Rect, bool) {
	return layout.Rect{W: v.W, H: v.H}, true
}

type Options struct {
	Settings engine.Settings
	FPS      int
	// Width and Height are used when the scenario leaves them unset.
	Width, Height float64
	Record        bool
	Metrics       []metrics.Metric
	Logger        *log.Logger
	// OnFrame, when set, is called after every display refresh.
	OnFrame func(e *engine.Engine, scene *viz.Scene)
}

type Result struct {
	Scenario  string
	FPS       int
	Refreshes int
	Frames    uint64
	Elapsed   time.Duration
	Width     float64
	Height    float64
	Tiles     int
	Dispersed bool
	Phase     explode.Phase
	Removed   bool
	Samples   []metrics.Sample
	Metrics   map[string]float64
}

// Run plays sc to its end. Due events are applied before each refresh, after
// the clock has advanced and fired its timers.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	w, h := sc.Width, sc.Height
	if w == 0 {
		w = opts.Width
	}
	if h == 0 {
		h = opts.Height
	}

	loop := sched.NewLoop(Epoch)
	view := &Viewport{W: w, H: h}
	scene := viz.NewScene(loop.Now)
	rec := metrics.NewRecorder(loop.Now, opts.Record, opts.Metrics...)

	e, err := engine.New(engine.Options{
		Viewport: view,
		Surface:  scene,
		Loop:     loop,
		Settings: opts.Settings,
		Trigger:  true,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	e.AddObserver(rec)
	res := &Result{Scenario: sc.Name, FPS: fps, Width: w, Height: h, Tiles: len(e.Tiles())}

	interval := time.Second / time.Duration(fps)
	length := sc.Length()
	events := sc.Timeline()
	next := 0
	for elapsed := time.Duration(0); elapsed <= length; elapsed += interval {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		loop.Advance(Epoch.Add(elapsed))
		for next < len(events) && events[next].At <= elapsed {
			apply(e, view, events[next])
			next++
		}
		e.Tick()
		res.Refreshes++
		res.Elapsed = elapsed
		if opts.OnFrame != nil {
			opts.OnFrame(e, scene)
		}
	}

	res.Frames = e.Frames()
	res.Dispersed = e.Dispersed()
	res.Phase = e.Phase()
	res.Removed = scene.Removed()
	res.Samples = rec.Samples()
	res.Metrics = rec.Values()
	return res, nil
}

func apply(e *engine.Engine, view *Viewport, ev Event) {
	p := vmath.V(ev.X, ev.Y)
	switch ev.Action {
	case Move:
		e.PointerMove(p)
	case Touch:
		e.TouchMove([]vmath.Vec2{p})
	case TouchStart:
		e.TouchStart([]vmath.Vec2{p})
	case Press:
		e.PressDown()
	case Release:
		e.PressUp()
	case ReleaseOutside:
		e.Release()
	case Resize:
		view.W, view.H = ev.Width, ev.Height
		e.Resize()
	case Hide:
		e.SetVisible(false)
	case Show:
		e.SetVisible(true)
	case Teardown:
		e.Teardown()
	}
}
