package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Down is world down in screen coordinates (Y grows downward).
var Down = cp.Vector{X: 0, Y: 1}

// RayCaster casts a ray from the body every physics tick. Origin and
// Direction are in body space and follow the body's rotation.
type RayCaster struct {
	Origin      cp.Vector
	Direction   cp.Vector
	MaxDistance float64
	// MaxHits caps the stored hits, nearest first. Zero keeps all of them.
	MaxHits int
}

var RayCasterComponent = NewComponent[RayCaster]()

func NewRayCaster(origin, direction cp.Vector) RayCaster {
	if direction.LengthSq() > 0 {
		direction = direction.Normalize()
	}
	return RayCaster{
		Origin:      origin,
		Direction:   direction,
		MaxDistance: math.Inf(1),
	}
}

func (r RayCaster) WithMaxHits(n int) RayCaster {
	r.MaxHits = n
	return r
}

func (r RayCaster) WithMaxDistance(d float64) RayCaster {
	r.MaxDistance = d
	return r
}

// WorldRay returns the ray start and unit direction for a body at pos with
// the given rotation vector (see cp.Body.Rotation).
func (r RayCaster) WorldRay(pos, rot cp.Vector) (start, dir cp.Vector) {
	start = pos.Add(r.Origin.Rotate(rot))
	dir = r.Direction.Rotate(rot)
	if dir.LengthSq() > 0 {
		dir = dir.Normalize()
	}
	return start, dir
}

type RayHit struct {
	// Entity is the raw id of the entity owning the hit shape, 0 if unknown.
	Entity   uint64
	Distance float64
	Point    cp.Vector
	Normal   cp.Vector
}

// RayHits holds the hits of the latest cast, nearest first.
type RayHits struct {
	Hits []RayHit
}

var RayHitsComponent = NewComponent[RayHits]()

func (h RayHits) IsEmpty() bool {
	return len(h.Hits) == 0
}

func (h RayHits) Nearest() (RayHit, bool) {
	if len(h.Hits) == 0 {
		return RayHit{}, false
	}
	return h.Hits[0], true
}
