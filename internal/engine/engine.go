package engine

import (
	"io"
	"log"
	"time"

	"github.com/san-kum/herogrid/internal/explode"
	"github.com/san-kum/herogrid/internal/input"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/physics"
	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

const DefaultResizeDebounce = 250 * time.Millisecond

// Viewport is the host geometry the engine reads.
type Viewport interface {
	// Width is the viewport width used for tier selection.
	Width() float64
	// Container returns the grid container bounds in viewport coordinates.
	Container() (layout.Rect, bool)
}

// Surface is the visual projection of the tiles. Index i always refers to
// the i-th tile of the current grid.
type Surface interface {
	physics.Sink
	explode.Animator
	// Reset drops every tile visual and creates n fresh ones.
	Reset(n int)
	// Clear drops every tile visual.
	Clear()
}

// Observer is notified after every physics frame.
type Observer interface {
	OnFrame(frame uint64, st physics.Stats, s input.State)
}

// Settings are the tunables of one engine.
type Settings struct {
	Tiers           layout.Tiers
	Physics         physics.Params
	ResetDelay      time.Duration
	ResizeDebounce  time.Duration
	ExplodeDistance float64
	ExplodeDuration time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		Tiers:           layout.Default,
		Physics:         physics.DefaultParams(),
		ResetDelay:      input.DefaultResetDelay,
		ResizeDebounce:  DefaultResizeDebounce,
		ExplodeDistance: explode.DefaultDistance,
		ExplodeDuration: explode.DefaultDuration,
	}
}

type Options struct {
	Viewport Viewport
	Surface  Surface
	Loop     *sched.Loop
	Settings Settings
	// Trigger reports whether the page has a trigger region. Without one
	// only pointer tracking is wired.
	Trigger bool
	Logger  *log.Logger
}

type Engine struct {
	view     Viewport
	surface  Surface
	loop     *sched.Loop
	settings Settings
	trigger  bool
	log      *log.Logger

	registry *tiles.Registry
	tracker  *input.Tracker
	integ    *physics.Integrator
	blast    *explode.Controller
	frames   *sched.FrameLoop
	resize   *sched.Slot

	observers []Observer
	stats     physics.Stats
	closed    bool
}

// New builds the grid and starts the frame loop. It returns ErrNoContainer,
// and no engine, when the host has no container.
func New(opts Options) (*Engine, error) {
	if opts.Viewport == nil {
		return nil, ErrNoContainer
	}
	if _, ok := opts.Viewport.Container(); !ok {
		return nil, ErrNoContainer
	}
	if opts.Surface == nil {
		opts.Surface = nopSurface{}
	}
	if opts.Loop == nil {
		opts.Loop = sched.NewLoop(time.Now())
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	s := opts.Settings
	if s.Tiers == nil {
		s.Tiers = layout.Default
	}
	s.Physics = s.Physics.WithDefaults()
	if s.ResizeDebounce <= 0 {
		s.ResizeDebounce = DefaultResizeDebounce
	}

	e := &Engine{
		view:     opts.Viewport,
		surface:  opts.Surface,
		loop:     opts.Loop,
		settings: s,
		trigger:  opts.Trigger,
		log:      opts.Logger,
		registry: tiles.NewRegistry(),
		integ:    physics.NewIntegrator(s.Physics, s.Tiers),
		resize:   sched.NewSlot(opts.Loop),
	}
	e.tracker = input.NewTracker(e.loop, s.Physics.Threshold, s.ResetDelay, e.explode)
	e.blast = explode.New(e.loop, s.ExplodeDistance, s.ExplodeDuration, e.remove)
	e.frames = sched.NewFrameLoop(e.step)

	e.build()
	e.frames.Start()
	return e, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Tick is one display refresh. It reports whether a physics frame ran.
func (e *Engine) Tick() bool {
	return e.frames.Tick()
}

func (e *Engine) step() bool {
	if e.tracker.State().Dispersed {
		return false
	}
	s := e.tracker.State()
	e.stats = e.integ.Step(physics.Frame{
		ViewportWidth: e.view.Width(),
		Input:         s,
	}, e.registry.Tiles(), e.surface)

	frame := e.frames.Frames()
	for _, o := range e.observers {
		o.OnFrame(frame, e.stats, s)
	}
	return true
}

// Rebuild lays the grid out again from scratch, dropping all physics state.
func (e *Engine) Rebuild() error {
	if e.Dispersed() {
		return ErrDispersed
	}
	return e.build()
}

func (e *Engine) build() error {
	bounds, ok := e.view.Container()
	if !ok {
		e.registry.Clear()
		e.surface.Clear()
		return ErrNoContainer
	}
	cfg := e.settings.Tiers.Select(e.view.Width())
	n := e.registry.Build(bounds, cfg)
	e.surface.Reset(n)
	plan := e.registry.Plan()
	e.log.Printf("grid built: %d tiles (%dx%d, item %.0fpx)", n, plan.Columns, plan.Rows, cfg.ItemSize)
	return nil
}

// PointerMove handles pointer motion anywhere in the document.
func (e *Engine) PointerMove(p vmath.Vec2) {
	if e.inert() {
		return
	}
	e.tracker.Move(p)
}

// TouchMove handles touch motion anywhere in the document.
func (e *Engine) TouchMove(points []vmath.Vec2) {
	if e.inert() {
		return
	}
	e.tracker.Touch(points)
}

// PressDown handles a press inside the trigger region.
func (e *Engine) PressDown() {
	if e.inert() || !e.trigger {
		return
	}
	e.tracker.PressDown()
}

// TouchStart handles a touch starting inside the trigger region.
func (e *Engine) TouchStart(points []vmath.Vec2) {
	if e.inert() || !e.trigger {
		return
	}
	e.tracker.TouchStart(points)
}

// PressUp handles a release inside the trigger region.
func (e *Engine) PressUp() {
	if e.inert() || !e.trigger {
		return
	}
	e.tracker.PressUp()
}

// Release handles a release anywhere in the document.
func (e *Engine) Release() {
	if e.inert() || !e.trigger {
		return
	}
	e.tracker.Release()
}

// Resize debounces a viewport resize into a full rebuild.
func (e *Engine) Resize() {
	if e.inert() {
		return
	}
	e.resize.Reset(e.settings.ResizeDebounce, func() {
		if err := e.Rebuild(); err != nil {
			e.log.Printf("rebuild skipped: %v", err)
		}
	})
}

// SetVisible pauses frames while the page is hidden.
func (e *Engine) SetVisible(visible bool) {
	if e.closed {
		return
	}
	was := e.frames.Pending()
	e.frames.SetVisible(visible)
	if now := e.frames.Pending(); now != was {
		if now {
			e.log.Printf("frames resumed")
		} else {
			e.log.Printf("frames paused")
		}
	}
}

// Teardown stops everything for page unload.
func (e *Engine) Teardown() {
	if e.closed {
		return
	}
	e.closed = true
	e.frames.Finish()
	e.resize.Cancel()
	e.tracker.Stop()
	e.blast.Cancel()
	e.log.Printf("torn down")
}

func (e *Engine) explode() {
	e.tracker.Disperse()
	e.resize.Cancel()
	e.frames.Finish()

	s := e.tracker.State()
	e.blast.Trigger(s.Pointer, e.registry.Tiles(), e.surface)
	e.log.Printf("dispersed %d tiles from (%.0f, %.0f)", e.registry.Len(), s.Pointer.X, s.Pointer.Y)
}

func (e *Engine) remove() {
	n := e.registry.Len()
	e.registry.Clear()
	e.surface.Clear()
	e.log.Printf("removed %d tiles", n)
}

func (e *Engine) inert() bool {
	return e.closed || e.tracker.State().Dispersed
}

func (e *Engine) State() input.State   { return e.tracker.State() }
func (e *Engine) Dispersed() bool      { return e.tracker.State().Dispersed }
func (e *Engine) Phase() explode.Phase { return e.blast.Phase() }
func (e *Engine) Tiles() []tiles.Tile  { return e.registry.Tiles() }
func (e *Engine) Plan() layout.Plan    { return e.registry.Plan() }
func (e *Engine) Stats() physics.Stats { return e.stats }
func (e *Engine) FramePending() bool   { return e.frames.Pending() }
func (e *Engine) Frames() uint64       { return e.frames.Frames() }
func (e *Engine) ResetPending() bool   { return e.tracker.ResetPending() }
func (e *Engine) ResizePending() bool  { return e.resize.Pending() }
func (e *Engine) Closed() bool         { return e.closed }
func (e *Engine) Settings() Settings   { return e.settings }
func (e *Engine) Loop() *sched.Loop    { return e.loop }
func (e *Engine) Threshold() int       { return e.tracker.Threshold() }

type nopSurface struct{}

func (nopSurface) Reset(int)                              {}
func (nopSurface) Clear()                                 {}
func (nopSurface) Commit(int, vmath.Vec2, float64)        {}
func (nopSurface) Explode(int, vmath.Vec2, time.Duration) {}
