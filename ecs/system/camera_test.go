package system

import (
	"testing"

	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	. "github.com/onsi/gomega"
)

func TestCameraSystem(t *testing.T) {
	tests := []struct {
		name       string
		cam        component.Camera
		start      component.Transform
		wantX      float64
		wantY      float64
		noCamTrans bool
	}{
		{
			name:  "snaps_without_smoothing",
			cam:   component.Camera{Zoom: 1},
			wantX: 100 - 320,
			wantY: 50 - 240,
		},
		{
			name:  "zoom_shrinks_view",
			cam:   component.Camera{Zoom: 2},
			wantX: 100 - 160,
			wantY: 50 - 120,
		},
		{
			name:  "lerps_with_smoothing",
			cam:   component.Camera{Zoom: 1, Smoothness: 0.5},
			start: component.Transform{X: 0, Y: 0},
			wantX: (100 - 320) / 2.0,
			wantY: (50 - 240) / 2.0,
		},
		{
			name:       "adds_missing_transform",
			cam:        component.Camera{},
			noCamTrans: true,
			wantX:      100 - 320,
			wantY:      50 - 240,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewWithT(t)
			w := ecs.NewWorld()

			player := ecs.CreateEntity(w)
			g.Expect(ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})).To(Succeed())
			g.Expect(ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: 100, Y: 50})).To(Succeed())

			camera := ecs.CreateEntity(w)
			cam := tc.cam
			g.Expect(ecs.Add(w, camera, component.CameraComponent.Kind(), &cam)).To(Succeed())
			if !tc.noCamTrans {
				start := tc.start
				g.Expect(ecs.Add(w, camera, component.TransformComponent.Kind(), &start)).To(Succeed())
			}

			NewCameraSystem(640, 480).Update(w)

			got, ok := ecs.Get(w, camera, component.TransformComponent.Kind())
			g.Expect(ok).To(BeTrue())
			g.Expect(got.X).To(BeNumerically("~", tc.wantX, 1e-9))
			g.Expect(got.Y).To(BeNumerically("~", tc.wantY, 1e-9))
		})
	}
}

func TestCameraSystemWithoutPlayer(t *testing.T) {
	g := NewWithT(t)
	w := ecs.NewWorld()
	camera := ecs.CreateEntity(w)
	g.Expect(ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{Zoom: 1})).To(Succeed())

	NewCameraSystem(640, 480).Update(w)

	g.Expect(ecs.Has(w, camera, component.TransformComponent.Kind())).To(BeFalse())
}
