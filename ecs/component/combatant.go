package component

// Combatant holds the per-archetype constants the damage resolver needs.
type Combatant struct {
	Name    string
	Faction Faction
	// StaggerDuration is applied on every non-lethal hit.
	StaggerDuration float64
	// BlinkInvincibility is the window started after every non-lethal hit.
	// Zero means the actor has none.
	BlinkInvincibility float64
	// DeathGrace is how long a dead actor stays in the world.
	DeathGrace float64
}

var CombatantComponent = NewComponent[Combatant]()
