// Package gui hosts the grid in a raylib window. The window is the page, the
// band between the header and footer strips is the hero section, and
// minimising the window hides the page.
package gui

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/herogrid/internal/config"
	"github.com/san-kum/herogrid/internal/engine"
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/viz"
	"github.com/san-kum/herogrid/internal/vmath"
)

const band = 48

type Options struct {
	Config    *config.Config
	Logger    *log.Logger
	NoTrigger bool
}

type window struct{}

func (window) Width() float64 { return float64(rl.GetScreenWidth()) }

func (window) Container() (layout.Rect, bool) {
	w, h := float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
	return layout.Rect{X: 0, Y: band, W: w, H: max(0, h-2*band)}, true
}

type App struct {
	cfg    *config.Config
	log    *log.Logger
	loop   *sched.Loop
	scene  *viz.Scene
	engine *engine.Engine

	bg, tile, text, muted, warn rl.Color

	lastMouse   vmath.Vec2
	touches     int
	touchInHero bool
	visible     bool
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	lg := opts.Logger
	if lg == nil {
		lg = log.New(io.Discard, "", 0)
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Display.Width), int32(cfg.Display.Height), "herogrid")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Display.FPS))
	rl.SetExitKey(0)

	app, err := newApp(cfg, lg, !opts.NoTrigger)
	if err != nil {
		return err
	}
	defer app.engine.Teardown()
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
			return nil
		}
		app.Update()
		app.Draw()
	}
	return nil
}

func newApp(cfg *config.Config, lg *log.Logger, trigger bool) (*App, error) {
	theme := viz.GetTheme(cfg.Display.Theme)
	a := &App{
		cfg:     cfg,
		log:     lg,
		loop:    sched.NewLoop(time.Now()),
		bg:      toColor(theme.Background),
		tile:    toColor(theme.Tile),
		text:    toColor(theme.Text),
		muted:   toColor(theme.Muted),
		warn:    toColor(theme.Warning),
		visible: true,
	}
	a.scene = viz.NewScene(a.loop.Now)
	e, err := engine.New(engine.Options{
		Viewport: window{},
		Surface:  a.scene,
		Loop:     a.loop,
		Settings: cfg.Settings(),
		Trigger:  trigger,
		Logger:   lg,
	})
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	a.engine = e
	return a, nil
}

func toColor(c lipgloss.Color) rl.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return rl.White
	}
	r, g, b := col.RGB255()
	return rl.NewColor(r, g, b, 255)
}

func hero() layout.Rect {
	r, _ := window{}.Container()
	return r
}

// Update feeds one refresh worth of window events to the engine, then runs
// timers and the frame.
func (a *App) Update() {
	a.loop.Advance(time.Now())

	if rl.IsWindowResized() {
		a.engine.Resize()
	}
	visible := !rl.IsWindowMinimized() && !rl.IsWindowHidden()
	if visible != a.visible {
		a.visible = visible
		a.engine.SetVisible(visible)
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.engine.Rebuild(); err != nil {
			a.log.Printf("rebuild: %v", err)
		}
	}

	a.pointer()
	a.touch()
	a.engine.Tick()
}

func (a *App) pointer() {
	mp := rl.GetMousePosition()
	p := vmath.V(float64(mp.X), float64(mp.Y))
	if p != a.lastMouse {
		a.lastMouse = p
		a.engine.PointerMove(p)
	}
	inHero := hero().Contains(p)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && inHero {
		a.engine.PressDown()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if inHero {
			a.engine.PressUp()
		}
		a.engine.Release()
	}
}

func (a *App) touch() {
	n := int(rl.GetTouchPointCount())
	points := make([]vmath.Vec2, n)
	for i := range points {
		tp := rl.GetTouchPosition(int32(i))
		points[i] = vmath.V(float64(tp.X), float64(tp.Y))
	}
	switch {
	case n > 0 && a.touches == 0:
		a.touchInHero = hero().Contains(points[0])
		a.engine.TouchMove(points)
		if a.touchInHero {
			a.engine.TouchStart(points)
		}
	case n > 0:
		a.engine.TouchMove(points)
	case n == 0 && a.touches > 0:
		if a.touchInHero {
			a.engine.PressUp()
		}
		a.engine.Release()
	}
	a.touches = n
}

func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(a.bg)

	size := a.engine.Plan().Config.ItemSize
	for _, s := range a.scene.Sprites(a.engine.Tiles(), size) {
		c := a.tile
		c.A = uint8(min(1, s.Opacity) * 255)
		h := s.Size / 2
		rl.DrawRectangleRec(rl.NewRectangle(
			float32(s.Center.X-h), float32(s.Center.Y-h), float32(s.Size), float32(s.Size),
		), c)
	}

	w := rl.GetScreenWidth()
	h := rl.GetScreenHeight()
	rl.DrawText("herogrid", 24, 16, 20, a.text)
	rl.DrawText(a.status(), int32(w)-220, 18, 16, a.muted)
	a.drawMeter(24, int32(h)-band/2)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(w)-90, int32(h)-band/2-8, 16, a.muted)
}

func (a *App) status() string {
	switch {
	case a.engine.Dispersed():
		return a.engine.Phase().String()
	case !a.visible:
		return "paused"
	}
	return fmt.Sprintf("%d tiles", len(a.engine.Tiles()))
}

// drawMeter shows progress toward dispersal, one dot per press.
func (a *App) drawMeter(x, y int32) {
	s := a.engine.State()
	th := a.engine.Threshold()
	for i := 0; i < th; i++ {
		cx := x + int32(i)*18
		if i < s.Count {
			col := a.tile
			if s.Count >= th-1 {
				col = a.warn
			}
			rl.DrawCircle(cx, y, 6, col)
			continue
		}
		rl.DrawCircleLines(cx, y, 6, a.muted)
	}
}
