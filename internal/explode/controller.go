// Package explode runs the one-shot dispersal of the grid.
package explode

import (
	"time"

	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/tiles"
	"github.com/san-kum/herogrid/internal/vmath"
)

const (
	DefaultDistance = 2000.0
	DefaultDuration = 2 * time.Second
)

type Phase int

const (
	Active Phase = iota
	Exploding
	Removed
)

func (p Phase) String() string {
	switch p {
	case Active:
		return "active"
	case Exploding:
		return "exploding"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Animator plays the dispersal of one tile over d: from its last committed
// transform to a translation of offset from its origin, fading to zero.
type Animator interface {
	Explode(index int, offset vmath.Vec2, d time.Duration)
}

type Controller struct {
	loop     *sched.Loop
	distance float64
	duration time.Duration
	phase    Phase
	timer    *sched.Timer
	onRemove func()
}

// New returns a controller in the Active phase. onRemove runs once the
// animation window has elapsed and must drop every tile.
func New(loop *sched.Loop, distance float64, duration time.Duration, onRemove func()) *Controller {
	if distance <= 0 {
		distance = DefaultDistance
	}
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Controller{
		loop:     loop,
		distance: distance,
		duration: duration,
		onRemove: onRemove,
	}
}

func (c *Controller) Phase() Phase { return c.phase }

// Direction is the unit vector from the pointer through the tile's current
// center, straight up when they coincide.
func Direction(t *tiles.Tile, pointer vmath.Vec2) vmath.Vec2 {
	return t.Center().Sub(pointer).UnitOr(vmath.Up)
}

// Trigger starts the dispersal. Only the first call has any effect.
func (c *Controller) Trigger(pointer vmath.Vec2, ts []tiles.Tile, anim Animator) bool {
	if c.phase != Active {
		return false
	}
	c.phase = Exploding

	if anim != nil {
		for i := range ts {
			t := &ts[i]
			anim.Explode(t.Index, Direction(t, pointer).Scale(c.distance), c.duration)
		}
	}

	c.timer = c.loop.AfterFunc(c.duration, c.remove)
	return true
}

func (c *Controller) remove() {
	c.timer = nil
	c.phase = Removed
	if c.onRemove != nil {
		c.onRemove()
	}
}

// Cancel removes the grid immediately, skipping the rest of the animation.
func (c *Controller) Cancel() {
	if c.phase != Exploding {
		return
	}
	c.timer.Stop()
	c.remove()
}
