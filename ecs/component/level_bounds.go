package component

import "github.com/jakecoffman/cp"

// LevelBounds is the playable rectangle from the origin to (Width, Height).
// The physics system walls it in.
type LevelBounds struct {
	Width  float64
	Height float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()

// Walls returns the four edges as segment end points: top, bottom, left,
// right. Empty bounds have no walls.
func (b LevelBounds) Walls() [][2]cp.Vector {
	if b.Width <= 0 || b.Height <= 0 {
		return nil
	}
	topLeft := cp.Vector{X: 0, Y: 0}
	topRight := cp.Vector{X: b.Width, Y: 0}
	bottomLeft := cp.Vector{X: 0, Y: b.Height}
	bottomRight := cp.Vector{X: b.Width, Y: b.Height}
	return [][2]cp.Vector{
		{topLeft, topRight},
		{bottomLeft, bottomRight},
		{topLeft, bottomLeft},
		{topRight, bottomRight},
	}
}
