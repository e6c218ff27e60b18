package component

// Dead is added once when health reaches zero and is never removed. The
// entity is destroyed at RemoveAt.
type Dead struct {
	At           float64
	RemoveAt     float64
	DropsSpawned bool
}

var DeadComponent = NewComponent[Dead]()
