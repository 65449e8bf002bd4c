package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec describes a test level: physics settings, world bounds, where
// the player spawns and the static pieces to float over.
type LevelSpec struct {
	Name     string            `yaml:"name"`
	Physics  PhysicsSpec       `yaml:"physics"`
	Bounds   BoundsSpec        `yaml:"bounds"`
	Spawn    PointSpec         `yaml:"spawn"`
	Player   string            `yaml:"player"`
	Camera   CameraSpec        `yaml:"camera"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

type PhysicsSpec struct {
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
	Damping    float64 `yaml:"damping"`
}

type BoundsSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CameraSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Player == "" {
		spec.Player = "player.yaml"
	}
	for i, ent := range spec.Entities {
		if len(ent.Components) == 0 {
			return nil, fmt.Errorf("prefabs: %s: entity %d (%q) has no components", filename, i, ent.Name)
		}
	}
	return &spec, nil
}
