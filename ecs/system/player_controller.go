package system

import (
	"math"

	"github.com/milk9111/floater/common"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// PlayerControllerSystem is the demo character: horizontal acceleration with
// a turnaround boost, coyote time, a jump buffer, and a window after each jump
// during which the floating controller is told to skip its correction.
type PlayerControllerSystem struct {
	dt float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{dt: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.ControllerComponent.Kind(),
		component.RigidBodyComponent.Kind(),
		func(_ ecs.Entity, player *component.Player, input *component.Input, ctrl *component.Controller, rb *component.RigidBody) {
			if rb.Body == nil {
				return
			}
			dt := p.dt

			player.CoyoteTimer -= dt
			player.BufferTimer -= dt
			player.JumpTimer -= dt
			if input.JumpPressed {
				player.BufferTimer = player.BufferTime
			}

			goal := input.MoveX * player.MaxSpeed
			accel := player.Accel
			if player.GoalVelocity*goal < 0 {
				accel *= player.TurnaroundMult
			}
			player.GoalVelocity = common.MoveTowards(player.GoalVelocity, goal, accel*dt)

			vel := rb.Body.Velocity()
			vel.X = player.GoalVelocity

			if ctrl.IsGrounded() {
				player.CoyoteTimer = player.CoyoteTime
			}

			if player.CoyoteTimer > 0 && player.BufferTimer > 0 && player.JumpTimer <= 0 {
				// Up is -Y. Keeping any upward speed lets jumps work while
				// walking up slopes.
				vel.Y = math.Min(-player.JumpVelocity, vel.Y-player.JumpVelocity)
				player.CoyoteTimer = 0
				player.BufferTimer = 0
				player.JumpTimer = player.JumpSkipTime
			}

			rb.Body.SetVelocityVector(vel)
			ctrl.SkipAcceleration = player.JumpTimer > 0
		})
}
