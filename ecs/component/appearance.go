package component

import "image/color"

// Appearance is what the viewer draws for an entity. The simulation ignores
// it.
type Appearance struct {
	Label string
	Color color.Color
}

var AppearanceComponent = NewComponent[Appearance]()
