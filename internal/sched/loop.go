// Package sched provides the cooperative time sources the grid runs on: a
// timer queue advanced by the host, single-slot debouncers and a frame loop
// with a visibility guard.
//
// Nothing here starts goroutines. The host owns the thread and calls
// [Loop.Advance] and [FrameLoop.Tick]; every callback runs synchronously on
// that thread, so engine state needs no locking.
package sched

import (
	"sort"
	"time"
)

// Loop is a timer queue driven by an externally supplied clock.
type Loop struct {
	now    time.Time
	seq    uint64
	timers []*Timer
}

// Timer is a pending single-shot callback.
type Timer struct {
	loop *Loop
	seq  uint64
	when time.Time
	fn   func()
	done bool
}

func NewLoop(now time.Time) *Loop {
	return &Loop{now: now}
}

func (l *Loop) Now() time.Time { return l.now }

// AfterFunc schedules fn to run d after the loop's current time.
func (l *Loop) AfterFunc(d time.Duration, fn func()) *Timer {
	l.seq++
	t := &Timer{loop: l, seq: l.seq, when: l.now.Add(d), fn: fn}
	l.timers = append(l.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the call prevented it from firing.
func (t *Timer) Stop() bool {
	if t == nil || t.done {
		return false
	}
	t.done = true
	t.loop.remove(t)
	return true
}

// Pending reports whether the timer is still waiting to fire.
func (t *Timer) Pending() bool { return t != nil && !t.done }

func (l *Loop) remove(t *Timer) {
	for i, cur := range l.timers {
		if cur == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

// Advance moves the clock to now and fires every timer that is due, in
// deadline order. Timers scheduled by callbacks fire in the same call when
// they are already due. Time never moves backwards. It returns the number of
// callbacks run.
func (l *Loop) Advance(now time.Time) int {
	if now.After(l.now) {
		l.now = now
	}
	fired := 0
	for {
		t := l.next()
		if t == nil || t.when.After(l.now) {
			return fired
		}
		t.done = true
		l.remove(t)
		t.fn()
		fired++
	}
}

// AdvanceBy is Advance relative to the loop's current time.
func (l *Loop) AdvanceBy(d time.Duration) int {
	return l.Advance(l.now.Add(d))
}

// NextDeadline returns the earliest pending deadline.
func (l *Loop) NextDeadline() (time.Time, bool) {
	t := l.next()
	if t == nil {
		return time.Time{}, false
	}
	return t.when, true
}

// Len is the number of pending timers.
func (l *Loop) Len() int { return len(l.timers) }

func (l *Loop) next() *Timer {
	if len(l.timers) == 0 {
		return nil
	}
	sort.SliceStable(l.timers, func(i, j int) bool {
		if l.timers[i].when.Equal(l.timers[j].when) {
			return l.timers[i].seq < l.timers[j].seq
		}
		return l.timers[i].when.Before(l.timers[j].when)
	})
	return l.timers[0]
}

// Slot holds at most one outstanding timer. Arming it again cancels the
// previous one.
type Slot struct {
	loop  *Loop
	timer *Timer
}

func NewSlot(loop *Loop) *Slot {
	return &Slot{loop: loop}
}

// Reset cancels any pending callback and schedules fn after d.
func (s *Slot) Reset(d time.Duration, fn func()) {
	s.Cancel()
	var t *Timer
	t = s.loop.AfterFunc(d, func() {
		if s.timer == t {
			s.timer = nil
		}
		fn()
	})
	s.timer = t
}

// Cancel drops the pending callback, if any.
func (s *Slot) Cancel() bool {
	if s.timer == nil {
		return false
	}
	stopped := s.timer.Stop()
	s.timer = nil
	return stopped
}

func (s *Slot) Pending() bool { return s.timer.Pending() }
