package main

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/common"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/ecs/entity"
	"github.com/milk9111/floater/ecs/system"
)

const (
	baseWidth      = 1280
	baseHeight     = 720
	ticksPerSecond = common.TicksPerSecond
)

// simulation is the world plus everything that steps it, shared by the
// window and headless runs.
type simulation struct {
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	level     *entity.Level

	levelPath string
	onGround  func(ecs.GroundedEvent)
}

// newSimulation loads levelPath into a fresh world. input, when set, runs
// first every tick.
func newSimulation(levelPath string, input ecs.System) (*simulation, error) {
	w := ecs.NewWorld()
	lvl, err := entity.LoadLevel(w, levelPath)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", levelPath, err)
	}

	physics := system.NewPhysicsSystem(lvl.PhysicsConfig())
	sim := &simulation{
		world:     w,
		physics:   physics,
		level:     lvl,
		levelPath: levelPath,
	}

	plugins := []ecs.Plugin{system.PlayerPlugin{DT: physics.Config().TimeStep}}
	plugins = append(plugins, system.FloaterPlugins(physics)...)
	plugins = append(plugins, system.CameraPlugin{ViewW: baseWidth, ViewH: baseHeight})
	sim.scheduler = ecs.NewScheduler(plugins...)
	if input != nil {
		sim.scheduler.Add(ecs.StageInput, input)
	}
	sim.scheduler.Add(ecs.StagePostPhysics, ecs.SystemFunc(sim.drainEvents))
	return sim, nil
}

func (s *simulation) step() {
	s.scheduler.Update(s.world)
}

func (s *simulation) drainEvents(w *ecs.World) {
	for _, evt := range ecs.DrainOf[ecs.GroundedEvent](w.Events()) {
		if s.onGround != nil {
			s.onGround(evt)
		}
	}
}

// retune reapplies the player prefab's controller block to the live player.
func (s *simulation) retune() error {
	return entity.ApplyControllerTuning(s.world, s.level.Player, s.level.Spec.Player)
}

// respawn puts the player back at the level spawn, at rest.
func (s *simulation) respawn() error {
	spawn := s.level.Spec.Spawn
	if err := entity.SetEntityTransform(s.world, s.level.Player, spawn.X, spawn.Y, 0); err != nil {
		return fmt.Errorf("respawn: %w", err)
	}
	if body := s.playerBody(); body != nil {
		body.SetPosition(cp.Vector{X: spawn.X, Y: spawn.Y})
		body.SetVelocityVector(cp.Vector{})
	}
	return nil
}

func (s *simulation) playerBody() *cp.Body {
	rb, ok := ecs.Get(s.world, s.level.Player, component.RigidBodyComponent.Kind())
	if !ok {
		return nil
	}
	return rb.Body
}

// probe reports the player's grounded state and the latest ground distance.
func (s *simulation) probe() (grounded bool, distance float64, ok bool) {
	ctrl, found := ecs.Get(s.world, s.level.Player, component.ControllerComponent.Kind())
	if !found {
		return false, 0, false
	}
	if hits, found := ecs.Get(s.world, s.level.Player, component.RayHitsComponent.Kind()); found {
		if hit, found := hits.Nearest(); found {
			return ctrl.IsGrounded(), hit.Distance, true
		}
	}
	return ctrl.IsGrounded(), 0, false
}
