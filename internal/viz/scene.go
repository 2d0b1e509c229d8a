package viz

import (
	"math"
	"time"

	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

// Visual is what a tile looks like right now.
type Visual struct {
	Offset  vmath.Vec2
	Opacity float64
}

// Flight is a dispersal tween: translation eases in and out, opacity eases
// out to zero.
type Flight struct {
	From     Visual
	To       vmath.Vec2
	Start    time.Time
	Duration time.Duration
}

// At samples the tween. done reports whether it has finished.
func (f Flight) At(now time.Time) (v Visual, done bool) {
	t := 1.0
	if f.Duration > 0 {
		t = float64(now.Sub(f.Start)) / float64(f.Duration)
	}
	if t <= 0 {
		return f.From, false
	}
	if t >= 1 {
		return Visual{Offset: f.To}, true
	}
	return Visual{
		Offset:  f.From.Offset.Lerp(f.To, EaseInOut(t)),
		Opacity: f.From.Opacity * (1 - EaseOut(t)),
	}, false
}

// EaseInOut is a cubic ease-in-out on [0, 1].
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOut is a cubic ease-out on [0, 1].
func EaseOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// Scene implements the engine's surface. Times come from clock, which should
// be the engine's loop clock so tweens follow the same time as timers.
type Scene struct {
	clock   func() time.Time
	visuals []Visual
	flights map[int]Flight
	removed bool
}

func NewScene(clock func() time.Time) *Scene {
	if clock == nil {
		clock = time.Now
	}
	return &Scene{clock: clock, flights: make(map[int]Flight)}
}

func (s *Scene) Reset(n int) {
	s.visuals = make([]Visual, n)
	clear(s.flights)
	s.removed = false
}

func (s *Scene) Clear() {
	s.visuals = nil
	clear(s.flights)
	s.removed = true
}

func (s *Scene) Commit(i int, offset vmath.Vec2, opacity float64) {
	if i < 0 || i >= len(s.visuals) {
		return
	}
	s.visuals[i] = Visual{Offset: offset, Opacity: opacity}
}

func (s *Scene) Explode(i int, offset vmath.Vec2, d time.Duration) {
	if i < 0 || i >= len(s.visuals) {
		return
	}
	s.flights[i] = Flight{From: s.visuals[i], To: offset, Start: s.clock(), Duration: d}
}

func (s *Scene) Len() int { return len(s.visuals) }

// Removed reports whether the tiles were dropped for good.
func (s *Scene) Removed() bool { return s.removed }

// Animating reports whether any dispersal tween is still running.
func (s *Scene) Animating() bool {
	now := s.clock()
	for _, f := range s.flights {
		if _, done := f.At(now); !done {
			return true
		}
	}
	return false
}

// Visual returns how tile i looks now.
func (s *Scene) Visual(i int) Visual {
	if i < 0 || i >= len(s.visuals) {
		return Visual{}
	}
	if f, ok := s.flights[i]; ok {
		v, _ := f.At(s.clock())
		return v
	}
	return s.visuals[i]
}

// Sprite is one tile ready to draw, in viewport pixels.
type Sprite struct {
	Center  vmath.Vec2
	Size    float64
	Opacity float64
}

// Sprites pairs the tiles with their visuals. Invisible tiles are skipped.
func (s *Scene) Sprites(ts []tiles.Tile, size float64) []Sprite {
	out := make([]Sprite, 0, len(ts))
	for i := range ts {
		v := s.Visual(ts[i].Index)
		if v.Opacity <= 0 {
			continue
		}
		out = append(out, Sprite{
			Center:  ts[i].Origin.Add(v.Offset),
			Size:    size,
			Opacity: v.Opacity,
		})
	}
	return out
}
