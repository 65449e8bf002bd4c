package entity

import (
	"fmt"

	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/prefabs"
)

func NewPlayer(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntity(w, prefabPath)
}

func NewPlayerAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	entity, err := BuildEntity(w, prefabPath)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, entity, x, y, 0); err != nil {
		return 0, fmt.Errorf("player: override transform: %w", err)
	}
	return entity, nil
}

// ApplyControllerTuning re-reads the controller block of a prefab and retunes
// e's live controller. Grounded state is kept and the probe picks up the new
// length on the next tick.
func ApplyControllerTuning(w *ecs.World, e ecs.Entity, prefabPath string) error {
	ctrl, ok := ecs.Get(w, e, component.ControllerComponent.Kind())
	if !ok {
		return fmt.Errorf("controller tuning: entity %v has no controller", e)
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return fmt.Errorf("controller tuning: %w", err)
	}
	raw, ok := spec.Components["controller"]
	if !ok {
		return fmt.Errorf("controller tuning: %q has no controller block", prefabPath)
	}
	tuning, err := prefabs.DecodeComponentSpec[controllerSpec](raw)
	if err != nil {
		return fmt.Errorf("controller tuning: decode: %w", err)
	}
	if tuning.RideHeight != nil && *tuning.RideHeight <= 0 {
		return ErrMissingRideHeight
	}

	*ctrl = tuneController(*ctrl, tuning)
	return nil
}
