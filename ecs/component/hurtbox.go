package component

// Hurtbox is the circular area in which an actor can be struck, centered on
// its transform.
type Hurtbox struct {
	Radius float64
}

var HurtboxComponent = NewComponent[Hurtbox]()
