package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type RigidBodyComponentSpec struct {
	Type string `yaml:"type"`
}

type ColliderComponentSpec struct {
	Kind       string  `yaml:"kind"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

type LockedAxesComponentSpec struct {
	Rotation bool `yaml:"rotation"`
}

type GravityScaleComponentSpec struct {
	Scale float64 `yaml:"scale"`
}

type RayCasterComponentSpec struct {
	OriginX     float64 `yaml:"origin_x"`
	OriginY     float64 `yaml:"origin_y"`
	DirectionX  float64 `yaml:"direction_x"`
	DirectionY  float64 `yaml:"direction_y"`
	MaxDistance float64 `yaml:"max_distance"`
	MaxHits     int     `yaml:"max_hits"`
}

// ControllerComponentSpec tunes a floating controller. Omitted tuning keeps
// the controller defaults; ride_height is required.
type ControllerComponentSpec struct {
	RideHeight     *float64 `yaml:"ride_height"`
	SpringStrength *float64 `yaml:"spring_strength"`
	SpringDamping  *float64 `yaml:"spring_damping"`
	RayPenetration *float64 `yaml:"ray_penetration"`
}

type PlayerComponentSpec struct {
	MaxSpeed       float64 `yaml:"max_speed"`
	Accel          float64 `yaml:"accel"`
	TurnaroundMult float64 `yaml:"turnaround_mult"`
	JumpVelocity   float64 `yaml:"jump_velocity"`
	CoyoteTime     float64 `yaml:"coyote_time"`
	BufferTime     float64 `yaml:"buffer_time"`
	JumpSkipTime   float64 `yaml:"jump_skip_time"`
}

type CameraComponentSpec struct {
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type LevelBoundsComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}
