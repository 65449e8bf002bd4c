package common

import "math"

const (
	// Gravity is world gravity in pixels per second squared, pointing down
	// the screen.
	Gravity = 980.0
	// TicksPerSecond is the fixed update rate of the host loop.
	TicksPerSecond = 60
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most delta without
// overshooting.
func MoveTowards(current, target, delta float64) float64 {
	diff := target - current
	if math.Abs(diff) <= delta {
		return target
	}
	return current + math.Copysign(delta, diff)
}
