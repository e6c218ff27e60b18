package component

// Projectile flies in a straight line at constant speed.
type Projectile struct {
	Owner      uint64
	Faction    Faction
	DirX       float64
	DirY       float64
	Speed      float64
	Activation uint64
	Remaining  float64
	Def        ProjectileDef
	// Damage overrides Def.Damage when positive.
	Damage int
}

func (p *Projectile) HitDamage() int {
	if p.Damage > 0 {
		return p.Damage
	}
	return p.Def.Damage
}

var ProjectileComponent = NewComponent[Projectile]()
