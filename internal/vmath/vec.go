// Package vmath holds the small amount of 2D vector math the grid needs.
package vmath

import "math"

// Vec2 is a point or displacement in viewport pixels.
type Vec2 struct {
	X, Y float64
}

// Up is the fallback direction when a direction cannot be derived.
var Up = Vec2{0, -1}

func V(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Neg() Vec2            { return Vec2{-v.X, -v.Y} }
func (v Vec2) LenSq() float64       { return v.X*v.X + v.Y*v.Y }
func (v Vec2) Len() float64         { return math.Sqrt(v.LenSq()) }
func (v Vec2) IsZero() bool         { return v.X == 0 && v.Y == 0 }

// Lerp interpolates linearly between v and o.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return v.Add(o.Sub(v).Scale(t)) }

// Unit returns v scaled to length 1. ok is false when v has no direction.
func (v Vec2) Unit() (u Vec2, ok bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// UnitOr is Unit with a fallback direction.
func (v Vec2) UnitOr(fallback Vec2) Vec2 {
	if u, ok := v.Unit(); ok {
		return u
	}
	return fallback
}

// IsFinite reports whether both components are real numbers.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
