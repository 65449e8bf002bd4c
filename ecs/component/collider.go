package component

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

type ColliderKind int

const (
	ColliderBox ColliderKind = iota
	ColliderCircle
	// ColliderCapsule is a vertical segment of length Height with rounded
	// ends of Radius.
	ColliderCapsule
)

func ParseColliderKind(s string) (ColliderKind, error) {
	switch s {
	case "", "box":
		return ColliderBox, nil
	case "circle":
		return ColliderCircle, nil
	case "capsule":
		return ColliderCapsule, nil
	default:
		return 0, fmt.Errorf("component: unknown collider kind %q", s)
	}
}

// Collider stores Chipmunk2D shape configuration and the runtime shape.
type Collider struct {
	Kind       ColliderKind
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64

	Shape *cp.Shape
}

var ColliderComponent = NewComponent[Collider]()
