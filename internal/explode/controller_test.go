package explode

import (
	"math"
	"testing"
	"time"

	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

type flight struct {
	offset vmath.Vec2
	d      time.Duration
}

type animRecorder map[int]flight

func (a animRecorder) Explode(i int, offset vmath.Vec2, d time.Duration) {
	a[i] = flight{offset, d}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		tile     tiles.Tile
		pointer  vmath.Vec2
		expected vmath.Vec2
	}{
		{"right", tiles.Tile{Origin: vmath.V(10, 0)}, vmath.V(0, 0), vmath.V(1, 0)},
		{"left", tiles.Tile{Origin: vmath.V(0, 0)}, vmath.V(10, 0), vmath.V(-1, 0)},
		{"offset counts", tiles.Tile{Origin: vmath.V(0, 0), Body: tiles.Body{Pos: vmath.V(0, 5)}}, vmath.V(0, 0), vmath.V(0, 1)},
		{"coincident", tiles.Tile{Origin: vmath.V(7, 7)}, vmath.V(7, 7), vmath.Up},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Direction(&tt.tile, tt.pointer)
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}

func TestTriggerLifecycle(t *testing.T) {
	loop := sched.NewLoop(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	removed := 0
	c := New(loop, DefaultDistance, DefaultDuration, func() { removed++ })

	ts := []tiles.Tile{
		{Index: 0, Origin: vmath.V(0, 0)},
		{Index: 1, Origin: vmath.V(100, 0)},
		{Index: 2, Origin: vmath.V(50, 50)},
	}
	anim := animRecorder{}

	if c.Phase() != Active {
		t.Fatalf("expected active, got %s", c.Phase())
	}
	if !c.Trigger(vmath.V(50, 50), ts, anim) {
		t.Fatal("first trigger ignored")
	}
	if c.Phase() != Exploding {
		t.Errorf("expected exploding, got %s", c.Phase())
	}
	if len(anim) != 3 {
		t.Fatalf("expected 3 animated tiles, got %d", len(anim))
	}
	for i, f := range anim {
		if !f.offset.IsFinite() {
			t.Errorf("tile %d: non-finite offset %+v", i, f.offset)
		}
		if math.Abs(f.offset.Len()-DefaultDistance) > 1e-9 {
			t.Errorf("tile %d: expected distance %v, got %v", i, DefaultDistance, f.offset.Len())
		}
		if f.d != DefaultDuration {
			t.Errorf("tile %d: expected duration %v, got %v", i, DefaultDuration, f.d)
		}
	}
	if anim[2].offset != vmath.V(0, -DefaultDistance) {
		t.Errorf("coincident tile should fly straight up, got %+v", anim[2].offset)
	}

	if c.Trigger(vmath.V(0, 0), ts, anim) {
		t.Error("second trigger accepted")
	}

	loop.AdvanceBy(DefaultDuration - time.Millisecond)
	if removed != 0 {
		t.Error("removed before the animation finished")
	}
	loop.AdvanceBy(time.Millisecond)
	if removed != 1 || c.Phase() != Removed {
		t.Errorf("expected removal after %v (removed=%d, phase=%s)", DefaultDuration, removed, c.Phase())
	}

	if c.Trigger(vmath.V(0, 0), ts, anim) {
		t.Error("trigger after removal accepted")
	}
}

func TestCancel(t *testing.T) {
	loop := sched.NewLoop(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	removed := 0
	c := New(loop, 0, 0, func() { removed++ })

	c.Cancel()
	if removed != 0 || c.Phase() != Active {
		t.Error("cancel before trigger had an effect")
	}

	c.Trigger(vmath.Vec2{}, nil, nil)
	c.Cancel()
	if removed != 1 || c.Phase() != Removed {
		t.Errorf("expected immediate removal, removed=%d phase=%s", removed, c.Phase())
	}
	loop.AdvanceBy(time.Minute)
	if removed != 1 {
		t.Error("removal ran twice")
	}
}
