package component

// Hitbox is a transient circular damage window. It lives on its own entity,
// optionally pinned to its owner, and owns one hit registry activation that is
// reset whenever the window is re-armed.
type Hitbox struct {
	Owner      uint64
	Faction    Faction
	Activation uint64
	Radius     float64
	OffsetX    float64
	OffsetY    float64
	// FollowOwner keeps the hitbox centered on the owner plus offset.
	FollowOwner bool
	Damage      int
	Knockback   float64
	Remaining   float64
}

var HitboxComponent = NewComponent[Hitbox]()
