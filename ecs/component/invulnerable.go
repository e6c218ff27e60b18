package component

// Invulnerable marks an entity as temporarily immune to damage. The status
// system counts Remaining down and removes the component at zero.
type Invulnerable struct {
	Remaining float64
}

var InvulnerableComponent = NewComponent[Invulnerable]()
