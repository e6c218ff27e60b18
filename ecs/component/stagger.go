package component

// Stagger is the flinch overlay. It never interrupts a running attack.
type Stagger struct {
	Remaining float64
}

var StaggerComponent = NewComponent[Stagger]()
