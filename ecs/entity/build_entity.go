package entity

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/prefabs"
)

var ErrMissingRideHeight = errors.New("entity: controller requires a positive ride_height")

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":    addPlayerTag,
	"ground_tag":    addGroundTag,
	"input":         addInput,
	"player":        addPlayer,
	"transform":     addTransform,
	"collider":      addCollider,
	"controller":    addController,
	"rigid_body":    addRigidBody,
	"locked_axes":   addLockedAxes,
	"ray_caster":    addRayCaster,
	"gravity_scale": addGravityScale,
	"camera":        addCamera,
	"level_bounds":  addLevelBounds,
}

// controller comes before the body parts so explicit blocks can override
// what its bundle attached.
var componentBuildOrder = []string{
	"player_tag",
	"ground_tag",
	"input",
	"player",
	"transform",
	"collider",
	"controller",
	"rigid_body",
	"locked_axes",
	"ray_caster",
	"gravity_scale",
	"camera",
	"level_bounds",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, prefabPath, spec)
}

// BuildEntityFromSpec builds an entity from an already decoded prefab; label
// only shows up in errors.
func BuildEntityFromSpec(w *ecs.World, label string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", label)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", label, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", label, names[0])
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

// AttachController gives e everything a floating controller needs. Parts
// already present on e are kept, except the controller itself.
func AttachController(w *ecs.World, e ecs.Entity, ctrl component.Controller) error {
	b := ctrl.Bundle()
	if !ecs.Has(w, e, component.RigidBodyComponent.Kind()) {
		if err := ecs.Add(w, e, component.RigidBodyComponent.Kind(), &b.RigidBody); err != nil {
			return fmt.Errorf("attach controller: rigid body: %w", err)
		}
	}
	if !ecs.Has(w, e, component.LockedAxesComponent.Kind()) {
		if err := ecs.Add(w, e, component.LockedAxesComponent.Kind(), &b.LockedAxes); err != nil {
			return fmt.Errorf("attach controller: locked axes: %w", err)
		}
	}
	if !ecs.Has(w, e, component.RayCasterComponent.Kind()) {
		if err := ecs.Add(w, e, component.RayCasterComponent.Kind(), &b.RayCaster); err != nil {
			return fmt.Errorf("attach controller: ray caster: %w", err)
		}
	}
	if err := ecs.Add(w, e, component.ControllerComponent.Kind(), &b.Controller); err != nil {
		return fmt.Errorf("attach controller: controller: %w", err)
	}
	return nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addGroundTag(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.GroundTagComponent.Kind(), &component.GroundTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.TurnaroundMult == 0 {
		spec.TurnaroundMult = 1
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MaxSpeed:       spec.MaxSpeed,
		Accel:          spec.Accel,
		TurnaroundMult: spec.TurnaroundMult,
		JumpVelocity:   spec.JumpVelocity,
		CoyoteTime:     spec.CoyoteTime,
		BufferTime:     spec.BufferTime,
		JumpSkipTime:   spec.JumpSkipTime,
	})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	kind, err := component.ParseColliderKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Kind:       kind,
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
	})
}

type controllerSpec = prefabs.ControllerComponentSpec

func addController(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[controllerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode controller spec: %w", err)
	}
	if spec.RideHeight == nil || *spec.RideHeight <= 0 {
		return ErrMissingRideHeight
	}
	return AttachController(w, e, tuneController(component.NewController(*spec.RideHeight), spec))
}

// tuneController applies only the fields the prefab sets.
func tuneController(ctrl component.Controller, spec controllerSpec) component.Controller {
	if spec.RideHeight != nil {
		ctrl = ctrl.WithRideHeight(*spec.RideHeight)
	}
	if spec.SpringStrength != nil {
		ctrl = ctrl.WithSpringStrength(*spec.SpringStrength)
	}
	if spec.SpringDamping != nil {
		ctrl = ctrl.WithSpringDamping(*spec.SpringDamping)
	}
	if spec.RayPenetration != nil {
		ctrl = ctrl.WithRayPenetration(*spec.RayPenetration)
	}
	return ctrl
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid body spec: %w", err)
	}
	bodyType, err := component.ParseBodyType(spec.Type)
	if err != nil {
		return err
	}
	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		rb.Type = bodyType
		return nil
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Type: bodyType})
}

type lockedAxesSpec = prefabs.LockedAxesComponentSpec

func addLockedAxes(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[lockedAxesSpec](raw)
	if err != nil {
		return fmt.Errorf("decode locked axes spec: %w", err)
	}
	return ecs.Add(w, e, component.LockedAxesComponent.Kind(), &component.LockedAxes{Rotation: spec.Rotation})
}

type rayCasterSpec = prefabs.RayCasterComponentSpec

func addRayCaster(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[rayCasterSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ray caster spec: %w", err)
	}
	dir := cp.Vector{X: spec.DirectionX, Y: spec.DirectionY}
	if dir.LengthSq() == 0 {
		dir = component.Down
	}
	maxDistance := spec.MaxDistance
	if maxDistance <= 0 {
		maxDistance = math.Inf(1)
		if existing, ok := ecs.Get(w, e, component.RayCasterComponent.Kind()); ok {
			maxDistance = existing.MaxDistance
		}
	}
	caster := component.NewRayCaster(cp.Vector{X: spec.OriginX, Y: spec.OriginY}, dir).
		WithMaxHits(spec.MaxHits).
		WithMaxDistance(maxDistance)
	return ecs.Add(w, e, component.RayCasterComponent.Kind(), &caster)
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom == 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

type levelBoundsSpec = prefabs.LevelBoundsComponentSpec

func addLevelBounds(w *ecs.World, e ecs.Entity, raw any) error {
	spec, err := prefabs.DecodeComponentSpec[levelBoundsSpec](raw)
	if err != nil {
		return fmt.Errorf("decode level bounds spec: %w", err)
	}
	return ecs.Add(w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Width: spec.Width, Height: spec.Height})
}
