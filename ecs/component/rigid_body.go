package component

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyKinematic
	BodyStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	case BodyStatic:
		return "static"
	default:
		return fmt.Sprintf("BodyType(%d)", int(t))
	}
}

func ParseBodyType(s string) (BodyType, error) {
	switch s {
	case "", "dynamic":
		return BodyDynamic, nil
	case "kinematic":
		return BodyKinematic, nil
	case "static":
		return BodyStatic, nil
	default:
		return 0, fmt.Errorf("component: unknown body type %q", s)
	}
}

// RigidBody classifies an entity for the physics world. Body is filled in by
// the physics system once the entity is in the space.
type RigidBody struct {
	Type BodyType
	Body *cp.Body
}

var RigidBodyComponent = NewComponent[RigidBody]()

// LockedAxes freezes rotation by giving the body infinite moment.
type LockedAxes struct {
	Rotation bool
}

var LockedAxesComponent = NewComponent[LockedAxes]()

// Acceleration accumulates mass independent linear acceleration for the next
// physics step only. The physics system clears it after every step.
type Acceleration struct {
	Linear cp.Vector
}

var AccelerationComponent = NewComponent[Acceleration]()

func (a *Acceleration) ApplyLinear(v cp.Vector) {
	a.Linear = a.Linear.Add(v)
}

func (a *Acceleration) Reset() {
	a.Linear = cp.Vector{}
}

// GravityScale multiplies world gravity for a dynamic body. Bodies without
// one fall at full gravity; zero makes a body float.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
