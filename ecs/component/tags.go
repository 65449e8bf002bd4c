package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// GroundTag marks static level geometry.
type GroundTag struct{}

var GroundTagComponent = NewComponent[GroundTag]()
