package component

// Camera follows the player. Its Transform holds the world position of the
// view's top-left corner.
type Camera struct {
	Zoom float64
	// Smoothness is the per-tick lerp factor toward the target, in (0, 1].
	// Zero snaps.
	Smoothness float64
}

var CameraComponent = NewComponent[Camera]()
