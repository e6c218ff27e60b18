package component

// DamageKnockback is a transient request for the knockback system to push the
// entity. When Directional is set the impulse follows DirX/DirY, otherwise it
// points away from the source position.
type DamageKnockback struct {
	SourceX     float64
	SourceY     float64
	DirX        float64
	DirY        float64
	Directional bool
	Impulse     float64
}

var DamageKnockbackRequestComponent = NewComponent[DamageKnockback]()

// KnockbackRecovery suspends controller-driven velocity while the impulse
// plays out.
type KnockbackRecovery struct {
	Remaining float64
}

var KnockbackRecoveryComponent = NewComponent[KnockbackRecovery]()
