package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugLineWidth      = 1
)

// drawPhysics outlines every shape in the space through the camera.
func drawPhysics(space *cp.Space, w *ecs.World, screen *ebiten.Image) {
	if space == nil || w == nil || screen == nil {
		return
	}
	camX, camY, zoom := cameraTransform(w)
	cp.DrawSpace(space, &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom})
}

// drawProbes draws each controller's ray: the unused part of the probe, the
// ride height mark and the nearest hit.
func drawProbes(w *ecs.World, screen *ebiten.Image) {
	camX, camY, zoom := cameraTransform(w)
	d := &physicsDebugDrawer{screen: screen, camX: camX, camY: camY, zoom: zoom}

	ecs.ForEach3(w,
		component.ControllerComponent.Kind(),
		component.RayCasterComponent.Kind(),
		component.RigidBodyComponent.Kind(),
		func(e ecs.Entity, ctrl *component.Controller, caster *component.RayCaster, rb *component.RigidBody) {
			if rb.Body == nil {
				return
			}
			start, dir := caster.WorldRay(rb.Body.Position(), rb.Body.Rotation())
			end := start.Add(dir.Mult(caster.MaxDistance))
			d.drawLineColor(start, end, colornames.Dimgray)

			ride := start.Add(dir.Mult(ctrl.RideHeight))
			side := dir.Perp().Mult(6)
			d.drawLineColor(ride.Sub(side), ride.Add(side), colornames.Gold)

			hits, ok := ecs.Get(w, e, component.RayHitsComponent.Kind())
			if !ok {
				return
			}
			hit, ok := hits.Nearest()
			if !ok {
				return
			}
			lineColor := colornames.Limegreen
			if ctrl.SkipAcceleration {
				lineColor = colornames.Orange
			}
			d.drawLineColor(start, hit.Point, lineColor)
			d.drawCircleColor(hit.Point, 3, colornames.Crimson)
		})
}

type physicsDebugDrawer struct {
	screen *ebiten.Image
	camX   float64
	camY   float64
	zoom   float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		d.drawLine(a, b, outline)
		return
	}
	// capsule: both rounded ends plus the two flat sides
	side := b.Sub(a).Normalize().Perp().Mult(radius)
	d.drawLine(a.Add(side), b.Add(side), outline)
	d.drawLine(a.Sub(side), b.Sub(side), outline)
	d.drawCircle(a, radius, outline)
	d.drawCircle(b, radius, outline)
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.5, G: 0.55, B: 0.65, A: 1}
	}
	return cp.FColor{R: 0.3, G: 0.8, B: 1, A: 1}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	d.drawLineColor(a, b, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawLineColor(a, b cp.Vector, c color.Color) {
	x1, y1 := d.toScreen(a)
	x2, y2 := d.toScreen(b)
	vector.StrokeLine(d.screen, float32(x1), float32(y1), float32(x2), float32(y2), debugLineWidth, c, true)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := range verts {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	d.drawCircleColor(center, radius, toNRGBA(c))
}

func (d *physicsDebugDrawer) drawCircleColor(center cp.Vector, radius float64, c color.Color) {
	if radius <= 0 {
		return
	}
	x, y := d.toScreen(center)
	vector.StrokeCircle(d.screen, float32(x), float32(y), float32(radius*d.zoom), debugLineWidth, c, true)
}

func (d *physicsDebugDrawer) toScreen(v cp.Vector) (float64, float64) {
	return (v.X - d.camX) * d.zoom, (v.Y - d.camY) * d.zoom
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func cameraTransform(w *ecs.World) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	camEntity, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return camX, camY, zoom
	}
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && camComp.Zoom > 0 {
		zoom = camComp.Zoom
	}
	return camX, camY, zoom
}
