package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"github.com/milk9111/floater/ecs/system"
	"github.com/milk9111/floater/prefabs"
	. "github.com/onsi/gomega"
)

func TestLoadLevel(t *testing.T) {
	g := NewWithT(t)
	usePrefabDir(t)
	w := ecs.NewWorld()

	lvl, err := LoadLevel(w, "level.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(lvl.Pieces).To(HaveLen(len(lvl.Spec.Entities)))
	for _, piece := range lvl.Pieces {
		g.Expect(ecs.Has(w, piece, component.GroundTagComponent.Kind())).To(BeTrue())
		rb, _ := ecs.Get(w, piece, component.RigidBodyComponent.Kind())
		g.Expect(rb.Type).To(Equal(component.BodyStatic))
	}

	bounds, ok := ecs.Get(w, lvl.Bounds, component.LevelBoundsComponent.Kind())
	g.Expect(ok).To(BeTrue())
	g.Expect(bounds.Width).To(Equal(lvl.Spec.Bounds.Width))

	g.Expect(ecs.Has(w, lvl.Camera, component.CameraComponent.Kind())).To(BeTrue())

	tr, _ := ecs.Get(w, lvl.Player, component.TransformComponent.Kind())
	g.Expect(tr.X).To(Equal(lvl.Spec.Spawn.X))
	g.Expect(tr.Y).To(Equal(lvl.Spec.Spawn.Y))
}

func TestLevelPhysicsConfig(t *testing.T) {
	tests := []struct {
		name string
		spec prefabs.PhysicsSpec
		want system.PhysicsConfig
	}{
		{
			name: "defaults",
			want: system.DefaultPhysicsConfig(),
		},
		{
			name: "overrides",
			spec: prefabs.PhysicsSpec{Gravity: 500, Iterations: 5, Damping: 0.9},
			want: system.PhysicsConfig{
				Gravity:    cp.Vector{X: 0, Y: 500},
				Iterations: 5,
				TimeStep:   system.DefaultPhysicsConfig().TimeStep,
				Damping:    0.9,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			lvl := &Level{Spec: &prefabs.LevelSpec{Physics: tc.spec}}
			g.Expect(lvl.PhysicsConfig()).To(Equal(tc.want))
		})
	}
}

func TestLoadLevelBadPiece(t *testing.T) {
	g := NewWithT(t)
	dir := usePrefabDir(t)
	writePrefab(t, dir, "broken_level.yaml", `
name: broken
entities:
  - name: lava
    components:
      lava: {}
`)
	w := ecs.NewWorld()

	_, err := LoadLevel(w, "broken_level.yaml")
	g.Expect(err).To(MatchError(ContainSubstring(`"lava"`)))
}

// The player spawns well above the floor, drops into probe range and floats.
func TestLevelPlayerFloats(t *testing.T) {
	g := NewWithT(t)
	usePrefabDir(t)
	w := ecs.NewWorld()
	lvl, err := LoadLevel(w, "level.yaml")
	g.Expect(err).NotTo(HaveOccurred())

	physics := system.NewPhysicsSystem(lvl.PhysicsConfig())
	s := ecs.NewScheduler(system.FloaterPlugins(physics)...)
	for i := 0; i < 600; i++ {
		s.Update(w)
	}

	ctrl, _ := ecs.Get(w, lvl.Player, component.ControllerComponent.Kind())
	g.Expect(ctrl.IsGrounded()).To(BeTrue())
	hits, _ := ecs.Get(w, lvl.Player, component.RayHitsComponent.Kind())
	nearest, ok := hits.Nearest()
	g.Expect(ok).To(BeTrue())
	want := ctrl.RideHeight - lvl.PhysicsConfig().Gravity.Y/ctrl.SpringStrength
	g.Expect(nearest.Distance).To(BeNumerically("~", want, 0.5))
}
