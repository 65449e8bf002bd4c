package main

import (
	"fmt"
	"log"

	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

// runHeadless steps the level without a window and logs grounded changes and
// where the player ends up relative to its ride height.
func runHeadless(levelPath string, ticks int) error {
	if ticks <= 0 {
		return fmt.Errorf("headless: ticks must be positive, got %d", ticks)
	}
	sim, err := newSimulation(levelPath, nil)
	if err != nil {
		return err
	}

	tick := 0
	sim.onGround = func(evt ecs.GroundedEvent) {
		state := "left ground"
		if evt.Grounded {
			state = "grounded"
		}
		log.Printf("tick %d: %v %s", tick, evt.Entity, state)
	}

	for tick = 1; tick <= ticks; tick++ {
		sim.step()
	}

	grounded, distance, ok := sim.probe()
	if !ok {
		log.Printf("after %d ticks: grounded=%v, no ground in probe range", ticks, grounded)
		return nil
	}
	ride := 0.0
	if ctrl, found := ecs.Get(sim.world, sim.level.Player, component.ControllerComponent.Kind()); found {
		ride = ctrl.RideHeight
	}
	log.Printf("after %d ticks: grounded=%v ground_distance=%.2f ride_height=%.2f", ticks, grounded, distance, ride)
	return nil
}
