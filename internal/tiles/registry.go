// Package tiles keeps the tile arena: one fixed origin and one mutable body
// per tile, addressed by index.
package tiles

import (
	"github.com/san-kum/herogrid/internal/layout"
	"github.com/san-kum/herogrid/internal/vmath"
)

// Body is a tile's displacement from its origin and its velocity.
type Body struct {
	Pos vmath.Vec2
	Vel vmath.Vec2
}

type Tile struct {
	Index  int
	Origin vmath.Vec2
	Body   Body
}

// Center is the tile's current absolute center.
func (t *Tile) Center() vmath.Vec2 {
	return t.Origin.Add(t.Body.Pos)
}

type Registry struct {
	tiles []Tile
	plan  layout.Plan
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Build discards every tile and lays out a fresh grid inside bounds.
// It returns the number of tiles created.
func (r *Registry) Build(bounds layout.Rect, cfg layout.GridConfig) int {
	r.Clear()
	r.plan = layout.Fit(bounds, cfg)

	n := r.plan.Len()
	if n == 0 {
		return 0
	}
	r.tiles = make([]Tile, n)
	for i := range r.tiles {
		r.tiles[i] = Tile{Index: i, Origin: r.plan.Center(i)}
	}
	return n
}

// Clear drops every tile with its origin and body.
func (r *Registry) Clear() {
	clear(r.tiles)
	r.tiles = nil
	r.plan = layout.Plan{}
}

// Tiles exposes the arena. Callers may mutate bodies in place.
func (r *Registry) Tiles() []Tile { return r.tiles }

func (r *Registry) Len() int { return len(r.tiles) }

func (r *Registry) Plan() layout.Plan { return r.plan }

// At returns tile i, or nil when out of range.
func (r *Registry) At(i int) *Tile {
	if i < 0 || i >= len(r.tiles) {
		return nil
	}
	return &r.tiles[i]
}
