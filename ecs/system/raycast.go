package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// RayQuerier is the slice of the physics engine the raycast system needs.
// Implementations return hits nearest first and never report shapes owned by
// self. PhysicsSystem is the production implementation.
type RayQuerier interface {
	CastRay(self ecs.Entity, start, dir cp.Vector, maxDistance float64) []component.RayHit
}

// RaycastSystem refreshes RayHits for every entity with a RayCaster and a
// body that is already in the physics world.
type RaycastSystem struct {
	rays RayQuerier
}

func NewRaycastSystem(rays RayQuerier) *RaycastSystem {
	return &RaycastSystem{rays: rays}
}

func (rs *RaycastSystem) Update(w *ecs.World) {
	if rs == nil || rs.rays == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.RayCasterComponent.Kind(), component.RigidBodyComponent.Kind(), func(e ecs.Entity, caster *component.RayCaster, rb *component.RigidBody) {
		hits, ok := ecs.Get(w, e, component.RayHitsComponent.Kind())
		if !ok {
			hits = &component.RayHits{}
			if err := ecs.Add(w, e, component.RayHitsComponent.Kind(), hits); err != nil {
				panic("raycast system: add ray hits: " + err.Error())
			}
		}
		hits.Hits = hits.Hits[:0]

		// not in the space yet; reads as "no ground" this tick
		if rb.Body == nil {
			return
		}

		start, dir := caster.WorldRay(rb.Body.Position(), rb.Body.Rotation())
		found := rs.rays.CastRay(e, start, dir, caster.MaxDistance)
		if caster.MaxHits > 0 && len(found) > caster.MaxHits {
			found = found[:caster.MaxHits]
		}
		hits.Hits = append(hits.Hits, found...)
	})
}
