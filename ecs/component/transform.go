package component

// Transform is the world position of an entity in arena units. Physics writes
// it after each step; everything else reads it.
type Transform struct {
	X          float64
	Y          float64
	FacingLeft bool
}

var TransformComponent = NewComponent[Transform]()
