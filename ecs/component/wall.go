package component

import "github.com/jakecoffman/cp"

// Wall is a static axis-aligned obstacle.
type Wall struct {
	Box               cp.BB
	BlocksProjectiles bool
}

var WallComponent = NewComponent[Wall]()
