package component

import "github.com/jakecoffman/cp"

// Transform is the entity pose in world space. X/Y is the body origin, which
// is also where a floating controller measures its ride height from.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()

func (t Transform) Position() cp.Vector {
	return cp.Vector{X: t.X, Y: t.Y}
}
