package system

import "github.com/milk9111/floater/ecs"

// ControllerPlugin schedules grounding and correction ahead of the physics
// step so the acceleration is integrated in the same tick.
type ControllerPlugin struct {
	Rays RayQuerier
}

func (p ControllerPlugin) Build(s *ecs.Scheduler) {
	s.Add(ecs.StagePrePhysics, NewRaycastSystem(p.Rays))
	s.Add(ecs.StagePrePhysics, NewControllerSystem())
}

type PhysicsPlugin struct {
	Physics *PhysicsSystem
}

func (p PhysicsPlugin) Build(s *ecs.Scheduler) {
	if p.Physics == nil {
		return
	}
	s.Add(ecs.StagePhysics, p.Physics)
}

// FloaterPlugins wires a physics world and the floating controller together.
func FloaterPlugins(physics *PhysicsSystem) []ecs.Plugin {
	return []ecs.Plugin{
		ControllerPlugin{Rays: physics},
		PhysicsPlugin{Physics: physics},
	}
}

// PlayerPlugin runs the demo character ahead of the controller so a jump can
// suspend correction in the tick it starts.
type PlayerPlugin struct {
	DT float64
}

func (p PlayerPlugin) Build(s *ecs.Scheduler) {
	s.Add(ecs.StagePrePhysics, NewPlayerControllerSystem(p.DT))
}

type CameraPlugin struct {
	ViewW float64
	ViewH float64
}

func (p CameraPlugin) Build(s *ecs.Scheduler) {
	s.Add(ecs.StagePostPhysics, NewCameraSystem(p.ViewW, p.ViewH))
}
