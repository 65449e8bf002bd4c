package entity

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/prefabs"
	. "github.com/onsi/gomega"
)

// usePrefabDir points prefab disk overrides at a temp dir so tests see the
// embedded prefabs plus whatever they write.
func usePrefabDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = prev })
	return dir
}

func writePrefab(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestBuildPlayerPrefab(t *testing.T) {
	g := NewWithT(t)
	usePrefabDir(t)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "player.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(ecs.Has(w, e, component.PlayerTagComponent.Kind())).To(BeTrue())
	g.Expect(ecs.Has(w, e, component.InputComponent.Kind())).To(BeTrue())
	g.Expect(ecs.Has(w, e, component.PlayerComponent.Kind())).To(BeTrue())

	collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	g.Expect(ok).To(BeTrue())
	g.Expect(collider.Kind).To(Equal(component.ColliderCapsule))

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	g.Expect(rb.Type).To(Equal(component.BodyDynamic))
	axes, _ := ecs.Get(w, e, component.LockedAxesComponent.Kind())
	g.Expect(axes.Rotation).To(BeTrue())

	ctrl, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
	g.Expect(ctrl.RideHeight).To(Equal(64.0))
	g.Expect(ctrl.SpringStrength).To(Equal(component.DefaultSpringStrength))

	caster, _ := ecs.Get(w, e, component.RayCasterComponent.Kind())
	g.Expect(caster.MaxHits).To(Equal(1))
	g.Expect(caster.MaxDistance).To(Equal(ctrl.ProbeLength()))
	g.Expect(caster.Direction).To(Equal(component.Down))
}

func TestBuildEntityOverridesBundleParts(t *testing.T) {
	g := NewWithT(t)
	dir := usePrefabDir(t)
	writePrefab(t, dir, "floaty.yaml", `
name: floaty
components:
  transform: {x: 10, y: 20}
  collider: {kind: circle, radius: 8}
  controller: {ride_height: 40, spring_damping: 0}
  ray_caster: {max_hits: 3}
  gravity_scale: {scale: 0.5}
`)
	w := ecs.NewWorld()

	e, err := BuildEntity(w, "floaty.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	ctrl, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
	g.Expect(ctrl.SpringDamping).To(BeZero(), "explicit zero must not fall back to the default")
	g.Expect(ctrl.RayPenetration).To(Equal(component.DefaultRayPenetration))

	caster, _ := ecs.Get(w, e, component.RayCasterComponent.Kind())
	g.Expect(caster.MaxHits).To(Equal(3))
	g.Expect(caster.MaxDistance).To(Equal(72.0), "bundle probe length is kept")

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	g.Expect(*tr).To(Equal(component.Transform{X: 10, Y: 20, ScaleX: 1, ScaleY: 1}))

	scale, _ := ecs.Get(w, e, component.GravityScaleComponent.Kind())
	g.Expect(scale.Scale).To(Equal(0.5))
}

func TestBuildEntityErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{
			name:    "no_components",
			content: "name: empty\n",
			wantMsg: "does not define components",
		},
		{
			name:    "unknown_component",
			content: "name: odd\ncomponents:\n  transform: {}\n  sprite: {}\n",
			wantMsg: `no builder for component "sprite"`,
		},
		{
			name:    "missing_ride_height",
			content: "name: sunk\ncomponents:\n  controller: {spring_strength: 10}\n",
			wantErr: ErrMissingRideHeight,
		},
		{
			name:    "negative_ride_height",
			content: "name: sunk\ncomponents:\n  controller: {ride_height: -4}\n",
			wantErr: ErrMissingRideHeight,
		},
		{
			name:    "bad_body_type",
			content: "name: b\ncomponents:\n  rigid_body: {type: floating}\n",
			wantMsg: "unknown body type",
		},
		{
			name:    "bad_collider_kind",
			content: "name: c\ncomponents:\n  collider: {kind: triangle}\n",
			wantMsg: "unknown collider kind",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			dir := usePrefabDir(t)
			writePrefab(t, dir, "bad.yaml", tc.content)
			w := ecs.NewWorld()

			_, err := BuildEntity(w, "bad.yaml")
			g.Expect(err).To(HaveOccurred())
			if tc.wantErr != nil {
				g.Expect(errors.Is(err, tc.wantErr)).To(BeTrue(), err.Error())
			}
			if tc.wantMsg != "" {
				g.Expect(err.Error()).To(ContainSubstring(tc.wantMsg))
			}
			g.Expect(ecs.Entities(w)).To(BeEmpty(), "failed builds must not leak entities")
		})
	}
}

func TestBuildEntityNilWorld(t *testing.T) {
	g := NewWithT(t)
	_, err := BuildEntity(nil, "player.yaml")
	g.Expect(err).To(HaveOccurred())
}

func TestAttachControllerKeepsExistingParts(t *testing.T) {
	g := NewWithT(t)
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	g.Expect(ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{Type: component.BodyKinematic})).To(Succeed())

	g.Expect(AttachController(w, e, component.NewController(50))).To(Succeed())

	rb, _ := ecs.Get(w, e, component.RigidBodyComponent.Kind())
	g.Expect(rb.Type).To(Equal(component.BodyKinematic))
	caster, _ := ecs.Get(w, e, component.RayCasterComponent.Kind())
	g.Expect(caster.MaxDistance).To(Equal(82.0))
	g.Expect(ecs.Has(w, e, component.ControllerComponent.Kind())).To(BeTrue())
}

func TestApplyControllerTuning(t *testing.T) {
	g := NewWithT(t)
	dir := usePrefabDir(t)
	writePrefab(t, dir, "tuned.yaml", "name: tuned\ncomponents:\n  controller: {ride_height: 64}\n")
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "tuned.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	ctrl, _ := ecs.Get(w, e, component.ControllerComponent.Kind())
	ctrl.Step(component.RayHits{Hits: []component.RayHit{{Distance: 60}}}, component.Down, cp.Vector{})
	g.Expect(ctrl.IsGrounded()).To(BeTrue())

	writePrefab(t, dir, "tuned.yaml", "name: tuned\ncomponents:\n  controller: {ride_height: 90, spring_strength: 300}\n")
	g.Expect(ApplyControllerTuning(w, e, "tuned.yaml")).To(Succeed())

	g.Expect(ctrl.RideHeight).To(Equal(90.0))
	g.Expect(ctrl.SpringStrength).To(Equal(300.0))
	g.Expect(ctrl.SpringDamping).To(Equal(component.DefaultSpringDamping))
	g.Expect(ctrl.IsGrounded()).To(BeTrue(), "retuning keeps grounded state")
	g.Expect(ctrl.ProbeLength()).To(Equal(90 + component.DefaultRayPenetration))

	writePrefab(t, dir, "tuned.yaml", "name: tuned\ncomponents:\n  controller: {ride_height: 0}\n")
	g.Expect(ApplyControllerTuning(w, e, "tuned.yaml")).To(MatchError(ErrMissingRideHeight))
	g.Expect(ctrl.RideHeight).To(Equal(90.0))

	writePrefab(t, dir, "tuned.yaml", "name: tuned\ncomponents:\n  input: {}\n")
	g.Expect(ApplyControllerTuning(w, e, "tuned.yaml")).To(MatchError(ContainSubstring("no controller block")))

	bare := ecs.CreateEntity(w)
	g.Expect(ApplyControllerTuning(w, bare, "tuned.yaml")).To(MatchError(ContainSubstring("has no controller")))
}
