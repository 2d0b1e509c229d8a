package viz

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestEasing(t *testing.T) {
	for _, f := range []func(float64) float64{EaseInOut, EaseOut} {
		if f(0) != 0 || math.Abs(f(1)-1) > 1e-12 {
			t.Errorf("easing endpoints: f(0)=%v f(1)=%v", f(0), f(1))
		}
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := f(float64(i) / 100)
			if v < prev {
				t.Fatalf("easing not monotonic at %d", i)
			}
			prev = v
		}
	}
	if math.Abs(EaseInOut(0.5)-0.5) > 1e-12 {
		t.Errorf("EaseInOut(0.5) = %v", EaseInOut(0.5))
	}
}

func TestSceneCommit(t *testing.T) {
	s := NewScene(nil)
	s.Reset(3)
	s.Commit(1, vmath.V(4, 5), 0.1)
	s.Commit(7, vmath.V(1, 1), 0.1)
	if v := s.Visual(1); v.Offset != vmath.V(4, 5) || v.Opacity != 0.1 {
		t.Errorf("visual = %+v", v)
	}
	if s.Len() != 3 {
		t.Errorf("len = %d", s.Len())
	}
}

func TestSceneFlight(t *testing.T) {
	c := &clock{t: time.Unix(0, 0)}
	s := NewScene(c.now)
	s.Reset(1)
	s.Commit(0, vmath.V(10, 0), 0.2)
	s.Explode(0, vmath.V(2000, 0), 2*time.Second)

	if !s.Animating() {
		t.Fatal("expected animation")
	}
	if v := s.Visual(0); v.Offset != vmath.V(10, 0) || v.Opacity != 0.2 {
		t.Errorf("start visual = %+v", v)
	}

	c.t = c.t.Add(time.Second)
	mid := s.Visual(0)
	if math.Abs(mid.Offset.X-1005) > 1e-9 {
		t.Errorf("mid offset = %v, want 1005", mid.Offset.X)
	}
	if mid.Opacity <= 0 || mid.Opacity >= 0.2 {
		t.Errorf("mid opacity = %v", mid.Opacity)
	}

	c.t = c.t.Add(time.Second)
	end := s.Visual(0)
	if end.Offset != vmath.V(2000, 0) || end.Opacity != 0 {
		t.Errorf("end visual = %+v", end)
	}
	if s.Animating() {
		t.Error("animation should be over")
	}
}

func TestSceneClear(t *testing.T) {
	s := NewScene(nil)
	s.Reset(2)
	s.Clear()
	if !s.Removed() || s.Len() != 0 {
		t.Error("clear should drop everything")
	}
	s.Reset(2)
	if s.Removed() {
		t.Error("reset should re-arm")
	}
}

func TestSprites(t *testing.T) {
	s := NewScene(nil)
	s.Reset(2)
	ts := []tiles.Tile{
		{Index: 0, Origin: vmath.V(30, 30)},
		{Index: 1, Origin: vmath.V(90, 30)},
	}
	s.Commit(0, vmath.V(5, -5), 0.1)
	sp := s.Sprites(ts, 40)
	if len(sp) != 1 {
		t.Fatalf("sprites = %d, want 1 (tile 1 is invisible)", len(sp))
	}
	if sp[0].Center != vmath.V(35, 25) || sp[0].Size != 40 {
		t.Errorf("sprite = %+v", sp[0])
	}
}
