// Package physics advances the tile bodies one frame at a time.
//
// Each tile is an independent point-mass tied to its origin. Inside the
// pointer's radius of influence it is pulled toward the pointer, or pushed
// away while the pointer is held down; outside it a spring returns it home.
// Velocities are damped every frame and displacements are clamped to a bound
// that grows with the interaction count:
//
//	mult      = max(1, count)
//	maxOffset = ceiling · mult² / (threshold-1)²
//	opacity   = min(max, base + (max-base)/(threshold-1) · count)
//
// With the default parameters the displacement bound is exactly 100px at the
// last count before dispersal.
//
// # Units
//
// Everything is in viewport pixels and one step is one display frame.
package physics
