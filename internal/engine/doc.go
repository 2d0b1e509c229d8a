// Package engine wires the hero grid together: one [Engine] per widget owns
// the tile arena, the interaction state, the integrator, the dispersal
// controller and the schedulers.
//
// Hosts translate their events into Engine calls and call [Engine.Tick] on
// every display refresh, all from one goroutine:
//
//	loop := sched.NewLoop(time.Now())
//	e, err := engine.New(engine.Options{Viewport: vp, Surface: scene, Loop: loop, Trigger: true})
//	if errors.Is(err, engine.ErrNoContainer) {
//	    return // nothing to animate
//	}
//	for range refresh {
//	    loop.Advance(time.Now())
//	    e.Tick()
//	}
//
// Pointer positions and container bounds share one coordinate space, the
// viewport, in pixels.
package engine
