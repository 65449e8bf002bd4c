package system

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/common"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

const (
	collisionTypeBody cp.CollisionType = iota + 1
	collisionTypeSolid
)

// maxRayDistance stands in for an unbounded ray; Chipmunk needs a segment end.
const maxRayDistance = 1e6

type PhysicsConfig struct {
	Gravity    cp.Vector
	Iterations int
	// TimeStep is the fixed step in seconds.
	TimeStep float64
	// Damping is the fraction of velocity kept per second, 1 = none lost.
	Damping float64
}

func DefaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Gravity:    cp.Vector{X: 0, Y: common.Gravity},
		Iterations: 20,
		TimeStep:   1.0 / common.TicksPerSecond,
		Damping:    1,
	}
}

// PhysicsSystem mirrors ECS rigid bodies into a Chipmunk space, integrates
// them once per tick and writes the results back to Transform.
type PhysicsSystem struct {
	cfg   PhysicsConfig
	space *cp.Space

	entities    map[ecs.Entity]*bodyInfo
	shapeOwners map[*cp.Shape]ecs.Entity
	nextGroup   uint
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
	group  uint

	// refreshed from components right before each step
	accel        cp.Vector
	gravityScale float64
}

func NewPhysicsSystem(cfg PhysicsConfig) *PhysicsSystem {
	def := DefaultPhysicsConfig()
	if cfg.Iterations <= 0 {
		cfg.Iterations = def.Iterations
	}
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = def.TimeStep
	}
	if cfg.Damping <= 0 {
		cfg.Damping = def.Damping
	}

	space := cp.NewSpace()
	space.Iterations = uint(cfg.Iterations)
	space.SetGravity(cfg.Gravity)
	space.SetDamping(cfg.Damping)
	return &PhysicsSystem{
		cfg:         cfg,
		space:       space,
		entities:    make(map[ecs.Entity]*bodyInfo),
		shapeOwners: make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Config() PhysicsConfig {
	return ps.cfg
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.syncWorldBounds(w)
	ps.loadStepInputs(w)

	ps.space.Step(ps.cfg.TimeStep)

	ps.syncTransforms(w)
}

// CastRay returns every shape hit by the ray, nearest first, skipping the
// shapes that belong to self.
func (ps *PhysicsSystem) CastRay(self ecs.Entity, start, dir cp.Vector, maxDistance float64) []component.RayHit {
	if ps == nil || ps.space == nil || maxDistance <= 0 || dir.LengthSq() == 0 {
		return nil
	}
	if math.IsInf(maxDistance, 1) || maxDistance > maxRayDistance {
		maxDistance = maxRayDistance
	}

	filter := cp.SHAPE_FILTER_ALL
	if info := ps.entities[self]; info != nil {
		filter = cp.NewShapeFilter(info.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)
	}

	end := start.Add(dir.Mult(maxDistance))
	var hits []component.RayHit
	ps.space.SegmentQuery(start, end, 0, filter, func(shape *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
		hits = append(hits, component.RayHit{
			Entity:   uint64(ps.shapeOwners[shape]),
			Distance: alpha * maxDistance,
			Point:    point,
			Normal:   normal,
		})
	}, nil)

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(
		component.RigidBodyComponent.Kind(),
		component.ColliderComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
		collider, _ := ecs.Get(w, e, component.ColliderComponent.Kind())
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		locked := false
		if axes, ok := ecs.Get(w, e, component.LockedAxesComponent.Kind()); ok {
			locked = axes.Rotation
		}

		info := ps.createBodyInfo(transform, rb.Type, collider, locked)
		ps.entities[e] = info
		for _, shape := range info.shapes {
			ps.shapeOwners[shape] = e
		}
		rb.Body = info.body
		collider.Shape = info.shapes[0]
	}
}

func (ps *PhysicsSystem) createBodyInfo(transform *component.Transform, bodyType component.BodyType, collider *component.Collider, lockRotation bool) *bodyInfo {
	ps.nextGroup++
	info := &bodyInfo{
		group:        ps.nextGroup,
		static:       bodyType == component.BodyStatic,
		gravityScale: 1,
	}

	var body *cp.Body
	switch bodyType {
	case component.BodyStatic:
		body = cp.NewStaticBody()
	case component.BodyKinematic:
		body = cp.NewKinematicBody()
	default:
		mass := collider.Mass
		if mass <= 0 {
			mass = 1
		}
		moment := math.Inf(1)
		if !lockRotation {
			moment = colliderMoment(collider, mass)
		}
		body = cp.NewBody(mass, moment)
		body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
			b.UpdateVelocity(gravity.Mult(info.gravityScale).Add(info.accel), damping, dt)
		})
	}
	body.SetPosition(transform.Position())
	body.SetAngle(transform.Rotation)
	ps.space.AddBody(body)

	shape := newColliderShape(body, collider)
	shape.SetFriction(collider.Friction)
	shape.SetElasticity(collider.Elasticity)
	shape.SetFilter(cp.NewShapeFilter(info.group, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	if info.static {
		shape.SetCollisionType(collisionTypeSolid)
	} else {
		shape.SetCollisionType(collisionTypeBody)
	}
	ps.space.AddShape(shape)

	info.body = body
	info.shapes = []*cp.Shape{shape}
	return info
}

func newColliderShape(body *cp.Body, c *component.Collider) *cp.Shape {
	switch c.Kind {
	case component.ColliderCircle:
		return cp.NewCircle(body, colliderRadius(c), cp.Vector{})
	case component.ColliderCapsule:
		half := c.Height / 2
		return cp.NewSegment(body, cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}, colliderRadius(c))
	default:
		width, height := c.Width, c.Height
		if width <= 0 || height <= 0 {
			width, height = 32, 32
		}
		return cp.NewBox(body, width, height, 0)
	}
}

func colliderMoment(c *component.Collider, mass float64) float64 {
	switch c.Kind {
	case component.ColliderCircle:
		return cp.MomentForCircle(mass, 0, colliderRadius(c), cp.Vector{})
	case component.ColliderCapsule:
		half := c.Height / 2
		return cp.MomentForSegment(mass, cp.Vector{X: 0, Y: -half}, cp.Vector{X: 0, Y: half}, colliderRadius(c))
	default:
		width, height := c.Width, c.Height
		if width <= 0 || height <= 0 {
			width, height = 32, 32
		}
		return cp.MomentForBox(mass, width, height)
	}
}

func colliderRadius(c *component.Collider) float64 {
	if c.Radius <= 0 {
		return 16
	}
	return c.Radius
}

// syncWorldBounds walls in the level once a LevelBounds entity exists.
func (ps *PhysicsSystem) syncWorldBounds(w *ecs.World) {
	boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[boundsEntity]; exists {
		return
	}
	bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	walls := bounds.Walls()
	if len(walls) == 0 {
		return
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody}
	for _, wall := range walls {
		shape := cp.NewSegment(ps.space.StaticBody, wall[0], wall[1], 1)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		info.shapes = append(info.shapes, shape)
		ps.shapeOwners[shape] = boundsEntity
	}

	ps.entities[boundsEntity] = info
}

// loadStepInputs hands this tick's accelerations and gravity scales to the
// velocity integrators and clears the accumulators.
func (ps *PhysicsSystem) loadStepInputs(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		info.accel = cp.Vector{}
		if acc, ok := ecs.Get(w, e, component.AccelerationComponent.Kind()); ok {
			info.accel = acc.Linear
			acc.Reset()
		}
		info.gravityScale = 1
		if scale, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			info.gravityScale = scale.Scale
		}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		if info.static {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := info.body.Position()
		transform.X = pos.X
		transform.Y = pos.Y
		transform.Rotation = info.body.Angle()
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.RigidBodyComponent.Kind()) || ecs.Has(w, e, component.LevelBoundsComponent.Kind())) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.shapeOwners, shape)
		}
		if info.body != nil && info.body != ps.space.StaticBody {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
