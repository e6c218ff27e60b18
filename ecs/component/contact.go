package component

// ContactDamage hurts the player on touch, at most once per Interval, unless
// the owner is staggered or dead.
type ContactDamage struct {
	Damage   int
	Interval float64
}

var ContactDamageComponent = NewComponent[ContactDamage]()
