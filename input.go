package main

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/floater/ecs"
	"github.com/milk9111/floater/ecs/component"
)

const stickDeadzone = 0.2

var (
	leftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	rightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}
)

// inputSystem samples keyboard and the first gamepad once per tick and hands
// the result to every Input component. The controller itself never reads
// devices.
type inputSystem struct {
	gamepads []ebiten.GamepadID
}

func (s *inputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	sample := component.Input{MoveX: axis(leftKeys, rightKeys), JumpPressed: anyJustPressed(jumpKeys)}

	s.gamepads = ebiten.AppendGamepadIDs(s.gamepads[:0])
	if len(s.gamepads) > 0 {
		id := s.gamepads[0]
		if x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal); math.Abs(x) > stickDeadzone {
			sample.MoveX = x
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			sample.JumpPressed = true
		}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, input *component.Input) {
		*input = sample
	})
}

func axis(neg, pos []ebiten.Key) float64 {
	v := 0.0
	if slices.ContainsFunc(neg, ebiten.IsKeyPressed) {
		v--
	}
	if slices.ContainsFunc(pos, ebiten.IsKeyPressed) {
		v++
	}
	return v
}

func anyJustPressed(keys []ebiten.Key) bool {
	return slices.ContainsFunc(keys, inpututil.IsKeyJustPressed)
}
