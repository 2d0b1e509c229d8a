// Package tui hosts the grid in a terminal. The terminal is the page, the
// area between the header and the status bar is the hero section, and
// terminal focus stands in for tab visibility. Cells are mapped to pixels so
// the physics keeps its pixel units.
package tui

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/herogrid/internal/config"
	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/viz"
	"github.com/san-kum/herogrid/internal/vmath"
)

const (
	headerRows = 1
	footerRows = 1
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
	// NoTrigger runs with pointer tracking only.
	NoTrigger bool
}

// screen maps terminal cells to viewport pixels.
type screen struct {
	cols, rows   int
	cellW, cellH float64
}

func (s screen) Width() float64 { return float64(s.cols) * s.cellW }

// Container is the hero section, the rows between header and footer.
func (s screen) Container() (layout.Rect, bool) {
	return s.hero(), true
}

func (s screen) hero() layout.Rect {
	rows := max(0, s.rows-headerRows-footerRows)
	return layout.Rect{
		X: 0,
		Y: float64(headerRows) * s.cellH,
		W: float64(s.cols) * s.cellW,
		H: float64(rows) * s.cellH,
	}
}

func (s screen) heroRows() int { return max(0, s.rows-headerRows-footerRows) }

// pixel is the center of a cell in viewport pixels.
func (s screen) pixel(x, y int) vmath.Vec2 {
	return vmath.V((float64(x)+0.5)*s.cellW, (float64(y)+0.5)*s.cellH)
}

// viewport lets the engine read the model's current screen.
type viewport struct{ m *Model }

func (v viewport) Width() float64                 { return v.m.screen.Width() }
func (v viewport) Container() (layout.Rect, bool) { return v.m.screen.Container() }

type frameMsg time.Time

// Model is the bubbletea model of the terminal host.
type Model struct {
	cfg     *config.Config
	log     *log.Logger
	trigger bool
	theme   viz.Theme
	styles  viz.Styles

	screen  screen
	loop    *sched.Loop
	scene   *viz.Scene
	engine  *engine.Engine
	err     error
	ticking bool
	hidden  bool

	lastFrame time.Time
	fps       float64
}

func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}
	theme := viz.GetTheme(cfg.Display.Theme)
	return &Model{
		cfg:     cfg,
		log:     lg,
		trigger: !opts.NoTrigger,
		theme:   theme,
		styles:  viz.NewStyles(theme),
		screen: screen{
			cellW: cfg.Display.CellWidth,
			cellH: cfg.Display.CellHeight,
		},
	}
}

// Run starts the terminal program and blocks until it quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

// Engine is nil until the first window size arrives.
func (m *Model) Engine() *engine.Engine { return m.engine }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	now := time.Now()
	if f, ok := msg.(frameMsg); ok {
		now = time.Time(f)
	}
	if m.loop != nil {
		m.loop.Advance(now)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.engine != nil {
				m.engine.Teardown()
			}
			return m, tea.Quit
		case "r":
			if m.engine != nil {
				if err := m.engine.Rebuild(); err != nil {
					m.log.Printf("rebuild: %v", err)
				}
			}
		case "h":
			m.setVisible(m.hidden)
		}
	case tea.WindowSizeMsg:
		m.screen.cols, m.screen.rows = msg.Width, msg.Height
		if m.engine == nil {
			m.start(now)
		} else {
			m.engine.Resize()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.FocusMsg:
		m.setVisible(true)
	case tea.BlurMsg:
		m.setVisible(false)
	case frameMsg:
		m.ticking = false
		m.frame(now)
	}
	return m, m.schedule(now)
}

func (m *Model) start(now time.Time) {
	m.loop = sched.NewLoop(now)
	m.scene = viz.NewScene(m.loop.Now)
	e, err := engine.New(engine.Options{
		Viewport: viewport{m},
		Surface:  m.scene,
		Loop:     m.loop,
		Settings: m.cfg.Settings(),
		Trigger:  m.trigger,
		Logger:   m.log,
	})
	if err != nil {
		m.err = err
		return
	}
	m.engine = e
	if m.hidden {
		e.SetVisible(false)
	}
}

func (m *Model) setVisible(v bool) {
	m.hidden = !v
	if m.engine != nil {
		m.engine.SetVisible(v)
	}
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if m.engine == nil {
		return
	}
	p := m.screen.pixel(msg.X, msg.Y)
	inHero := m.screen.hero().Contains(p)
	switch msg.Action {
	case tea.MouseActionMotion:
		m.engine.PointerMove(p)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.engine.PointerMove(p)
		if inHero {
			m.engine.PressDown()
		}
	case tea.MouseActionRelease:
		if inHero {
			m.engine.PressUp()
		}
		m.engine.Release()
	}
}

func (m *Model) frame(now time.Time) {
	if m.engine == nil {
		return
	}
	if m.engine.Tick() {
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1 / dt
			}
		}
		m.lastFrame = now
	}
}

// schedule keeps one tick in flight: every refresh while frames or the
// dispersal tween run, otherwise only at the next timer deadline.
func (m *Model) schedule(now time.Time) tea.Cmd {
	if m.ticking || m.engine == nil || m.engine.Closed() {
		return nil
	}
	var d time.Duration
	switch {
	case m.engine.FramePending() || m.scene.Animating():
		d = m.cfg.FrameInterval()
	default:
		at, ok := m.loop.NextDeadline()
		if !ok {
			return nil
		}
		d = max(at.Sub(now), time.Millisecond)
	}
	m.ticking = true
	return tea.Tick(d, func(t time.Time) tea.Msg { return frameMsg(t) })
}
