package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// ControllerSystem turns each floating controller's latest ray hits into a
// grounded flag and a spring-damper acceleration for this tick. It must run
// after RaycastSystem and before PhysicsSystem in the same tick.
type ControllerSystem struct{}

func NewControllerSystem() *ControllerSystem {
	return &ControllerSystem{}
}

func (cs *ControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ControllerComponent.Kind(), component.RigidBodyComponent.Kind(), func(e ecs.Entity, ctrl *component.Controller, rb *component.RigidBody) {
		wasGrounded := ctrl.IsGrounded()

		var hits component.RayHits
		if h, ok := ecs.Get(w, e, component.RayHitsComponent.Kind()); ok {
			hits = *h
		}

		caster, hasCaster := ecs.Get(w, e, component.RayCasterComponent.Kind())
		down := component.Down
		var velocity cp.Vector
		if rb.Body != nil {
			velocity = rb.Body.Velocity()
			if hasCaster {
				_, down = caster.WorldRay(rb.Body.Position(), rb.Body.Rotation())
			}
		}

		if accel, ok := ctrl.Step(hits, down, velocity); ok {
			acc, found := ecs.Get(w, e, component.AccelerationComponent.Kind())
			if !found {
				acc = &component.Acceleration{}
				if err := ecs.Add(w, e, component.AccelerationComponent.Kind(), acc); err != nil {
					panic("controller system: add acceleration: " + err.Error())
				}
			}
			acc.ApplyLinear(accel)
		}

		if ctrl.IsGrounded() != wasGrounded {
			w.Events().Push(ecs.Event{
				Type: ecs.EventGroundedChanged,
				Data: ecs.GroundedEvent{Entity: e, Grounded: ctrl.IsGrounded()},
			})
		}

		// Keep the probe sized to the current tuning; takes effect next cast.
		if hasCaster {
			caster.MaxDistance = ctrl.ProbeLength()
		}
	})
}
