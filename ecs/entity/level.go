package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/ecs/system"
	"github.com/milk9111/floater/prefabs"
)

// Level is what LoadLevelToWorld put into the world.
type Level struct {
	Spec   *prefabs.LevelSpec
	Player ecs.Entity
	Camera ecs.Entity
	Bounds ecs.Entity
	Pieces []ecs.Entity
}

// LoadLevel reads a level prefab and builds it into w.
func LoadLevel(w *ecs.World, filename string) (*Level, error) {
	spec, err := prefabs.LoadLevelSpec(filename)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return LoadLevelToWorld(w, spec)
}

// LoadLevelToWorld creates the bounds, every static piece, the camera and the
// player at the spawn point.
func LoadLevelToWorld(w *ecs.World, spec *prefabs.LevelSpec) (*Level, error) {
	if w == nil || spec == nil {
		return nil, fmt.Errorf("level: world and spec are required")
	}
	lvl := &Level{Spec: spec}

	if spec.Bounds.Width > 0 && spec.Bounds.Height > 0 {
		lvl.Bounds = ecs.CreateEntity(w)
		if err := ecs.Add(w, lvl.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
			Width:  spec.Bounds.Width,
			Height: spec.Bounds.Height,
		}); err != nil {
			return nil, fmt.Errorf("level: add bounds: %w", err)
		}
	}

	for i, piece := range spec.Entities {
		label := piece.Name
		if label == "" {
			label = fmt.Sprintf("%s#%d", spec.Name, i)
		}
		e, err := BuildEntityFromSpec(w, label, piece)
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		lvl.Pieces = append(lvl.Pieces, e)
	}

	camera, err := NewCamera(w, spec.Camera)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	lvl.Camera = camera

	player, err := NewPlayerAt(w, spec.Player, spec.Spawn.X, spec.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	lvl.Player = player

	return lvl, nil
}

// PhysicsConfig is the level's physics settings over the defaults.
func (l *Level) PhysicsConfig() system.PhysicsConfig {
	cfg := system.DefaultPhysicsConfig()
	if l == nil || l.Spec == nil {
		return cfg
	}
	p := l.Spec.Physics
	if p.Gravity != 0 {
		cfg.Gravity = cp.Vector{X: 0, Y: p.Gravity}
	}
	if p.Iterations > 0 {
		cfg.Iterations = p.Iterations
	}
	if p.Damping > 0 {
		cfg.Damping = p.Damping
	}
	return cfg
}
