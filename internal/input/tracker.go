// Package input tracks the pointer, the press state and the interaction
// counter that drives force scaling and the dispersal threshold.
package input

import (
	"time"

	"github.com/san-kum/herogrid/internal/sched"
	"github.com/san-kum/herogrid/internal/vmath"
)

const (
	DefaultThreshold  = 10
	DefaultResetDelay = 500 * time.Millisecond
)

// State is the interaction state read by every frame.
type State struct {
	Pointer   vmath.Vec2
	Pressed   bool
	Count     int
	Dispersed bool
}

type Tracker struct {
	state       State
	threshold   int
	resetDelay  time.Duration
	reset       *sched.Slot
	onThreshold func()
}

// NewTracker returns a tracker whose reset timer runs on loop. onThreshold
// is invoked synchronously by the press that reaches threshold.
func NewTracker(loop *sched.Loop, threshold int, resetDelay time.Duration, onThreshold func()) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if resetDelay <= 0 {
		resetDelay = DefaultResetDelay
	}
	return &Tracker{
		threshold:   threshold,
		resetDelay:  resetDelay,
		reset:       sched.NewSlot(loop),
		onThreshold: onThreshold,
	}
}

// State returns a snapshot of the interaction state.
func (t *Tracker) State() State { return t.state }

func (t *Tracker) Threshold() int { return t.threshold }

// ResetPending reports whether a counter reset is scheduled.
func (t *Tracker) ResetPending() bool { return t.reset.Pending() }

// Move records a pointer position from anywhere in the document.
func (t *Tracker) Move(p vmath.Vec2) {
	t.state.Pointer = p
}

// Touch records the first active touch point. Empty touch lists are ignored.
func (t *Tracker) Touch(points []vmath.Vec2) {
	if len(points) > 0 {
		t.state.Pointer = points[0]
	}
}

// PressDown handles a press inside the trigger region.
func (t *Tracker) PressDown() {
	if t.state.Dispersed {
		return
	}
	t.state.Pressed = true
	t.state.Count++
	t.reset.Cancel()

	if t.state.Count >= t.threshold && t.onThreshold != nil {
		t.onThreshold()
	}
}

// TouchStart is PressDown for a touch, which also moves the pointer.
func (t *Tracker) TouchStart(points []vmath.Vec2) {
	if t.state.Dispersed {
		return
	}
	t.Touch(points)
	t.PressDown()
}

// PressUp handles a release inside the trigger region. Below the threshold it
// schedules the counter to decay back to zero.
func (t *Tracker) PressUp() {
	t.state.Pressed = false
	if t.state.Dispersed || t.state.Count >= t.threshold {
		return
	}
	t.reset.Reset(t.resetDelay, func() {
		t.state.Count = 0
	})
}

// Release handles a release anywhere in the document. It never schedules a
// reset.
func (t *Tracker) Release() {
	t.state.Pressed = false
}

// Disperse latches the dispersed state. There is no way back.
func (t *Tracker) Disperse() {
	t.state.Dispersed = true
	t.reset.Cancel()
}

// Stop cancels the pending reset without touching the counter.
func (t *Tracker) Stop() {
	t.reset.Cancel()
}
