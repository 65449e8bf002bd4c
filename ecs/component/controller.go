package component

import "github.com/jakecoffman/cp"

const (
	DefaultSpringStrength = 512.0
	DefaultSpringDamping  = 32.0
	DefaultRayPenetration = 32.0
)

// Controller floats a dynamic body RideHeight above whatever its downward
// ray hits, using a mass independent spring-damper acceleration. It does not
// move the body sideways or read input.
type Controller struct {
	// SpringStrength pulls the body toward RideHeight.
	SpringStrength float64
	// SpringDamping opposes velocity along the probe axis. Lower values feel
	// bouncier.
	SpringDamping float64
	// RayPenetration extends the probe past RideHeight so the body stays
	// grounded walking down slopes.
	RayPenetration float64
	// RideHeight is the target distance from the body origin to the ground.
	RideHeight float64
	// SkipAcceleration suspends the correction while keeping grounded state
	// up to date, e.g. for the duration of a jump.
	SkipAcceleration bool

	grounded bool
}

var ControllerComponent = NewComponent[Controller]()

// NewController returns a controller with the given ride height and default
// tuning for everything else.
func NewController(rideHeight float64) Controller {
	return Controller{
		SpringStrength: DefaultSpringStrength,
		SpringDamping:  DefaultSpringDamping,
		RayPenetration: DefaultRayPenetration,
		RideHeight:     rideHeight,
	}
}

func (c Controller) WithSpringStrength(v float64) Controller {
	c.SpringStrength = v
	return c
}

func (c Controller) WithSpringDamping(v float64) Controller {
	c.SpringDamping = v
	return c
}

func (c Controller) WithRayPenetration(v float64) Controller {
	c.RayPenetration = v
	return c
}

func (c Controller) WithRideHeight(v float64) Controller {
	c.RideHeight = v
	return c
}

// IsGrounded reports whether the most recent probe hit anything.
func (c Controller) IsGrounded() bool {
	return c.grounded
}

// ProbeLength is the ray length the controller needs.
func (c Controller) ProbeLength() float64 {
	return c.RideHeight + c.RayPenetration
}

// SpringForce is the signed correction along the probe axis for a ground hit
// at distance while moving at speed along the same axis. Positive values pull
// toward the ground.
func (c Controller) SpringForce(distance, speed float64) float64 {
	return (distance-c.RideHeight)*c.SpringStrength - speed*c.SpringDamping
}

// Step records grounded state from hits and returns the acceleration to apply
// this tick. down is the world-space probe direction. ok is false when no
// acceleration should be applied at all.
func (c *Controller) Step(hits RayHits, down, velocity cp.Vector) (accel cp.Vector, ok bool) {
	hit, found := hits.Nearest()
	if !found {
		c.grounded = false
		return cp.Vector{}, false
	}
	c.grounded = true
	if c.SkipAcceleration {
		return cp.Vector{}, false
	}
	return down.Mult(c.SpringForce(hit.Distance, down.Dot(velocity))), true
}

// ControllerBundle is everything a floating body needs at spawn time.
type ControllerBundle struct {
	RigidBody  RigidBody
	LockedAxes LockedAxes
	RayCaster  RayCaster
	Controller Controller
}

// Bundle pairs the controller with a dynamic rotation-locked body and a
// single-hit downward ray sized to ProbeLength.
func (c Controller) Bundle() ControllerBundle {
	return ControllerBundle{
		RigidBody:  RigidBody{Type: BodyDynamic},
		LockedAxes: LockedAxes{Rotation: true},
		RayCaster: NewRayCaster(cp.Vector{}, Down).
			WithMaxHits(1).
			WithMaxDistance(c.ProbeLength()),
		Controller: c,
	}
}
