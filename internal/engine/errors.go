package engine

import "errors"

var (
	// ErrNoContainer means the host has no container to lay the grid out in.
	ErrNoContainer = errors.New("herogrid: no grid container")

	// ErrDispersed means the grid has been dispersed and will not come back.
	ErrDispersed = errors.New("herogrid: grid dispersed")
)
