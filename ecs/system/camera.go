package system

import (
	"github.com/milk9111/floater/common"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

type CameraSystem struct {
	viewW float64
	viewH float64
}

func NewCameraSystem(viewW, viewH float64) *CameraSystem {
	return &CameraSystem{viewW: viewW, viewH: viewH}
}

// Update moves the camera entity's transform so the player sits in the middle
// of the view.
func (cs *CameraSystem) Update(w *ecs.World) {
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	target, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		camTransform = &component.Transform{ScaleX: 1, ScaleY: 1}
		if err := ecs.Add(w, camEntity, component.TransformComponent.Kind(), camTransform); err != nil {
			panic("camera system: add transform: " + err.Error())
		}
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	wantX := targetTransform.X - cs.viewW/(2*zoom)
	wantY := targetTransform.Y - cs.viewH/(2*zoom)

	if cam.Smoothness <= 0 || cam.Smoothness >= 1 {
		camTransform.X = wantX
		camTransform.Y = wantY
		return
	}
	camTransform.X = common.Lerp(camTransform.X, wantX, cam.Smoothness)
	camTransform.Y = common.Lerp(camTransform.Y, wantY, cam.Smoothness)
}
