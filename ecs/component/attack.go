package component

// AttackKind selects how the sequencer spends the active window.
type AttackKind string

const (
	AttackMelee  AttackKind = "melee"
	AttackDash   AttackKind = "dash"
	AttackVolley AttackKind = "volley"
	AttackBurst  AttackKind = "burst"
	AttackLunge  AttackKind = "lunge"
)

func (k AttackKind) Valid() bool {
	switch k {
	case AttackMelee, AttackDash, AttackVolley, AttackBurst, AttackLunge:
		return true
	}
	return false
}

type PatternKind string

const (
	PatternSingle PatternKind = "single"
	PatternFan    PatternKind = "fan"
	PatternCircle PatternKind = "circle"
)

// Pattern spreads Count projectiles around the aim direction. Fan spaces them
// evenly over SpreadDeg, circle over 360 degrees.
type Pattern struct {
	Kind      PatternKind
	Count     int
	SpreadDeg float64
}

// ProjectileDef is the template a volley spawns from.
type ProjectileDef struct {
	Speed         float64
	Damage        int
	Lifetime      float64
	Radius        float64
	DestroyOnHit  bool
	DestroyOnWall bool
	Knockback     float64
	// KnockbackAlong pushes along the flight direction instead of away from
	// the impact point.
	KnockbackAlong bool
	Stun           float64
}

// BurstDef is a telegraphed ground explosion.
type BurstDef struct {
	Delay  float64
	Radius float64
	Damage int
	Jitter float64
}

// ZoneDef is a lingering damage area, e.g. the trail of a corrupted dash.
type ZoneDef struct {
	SpawnInterval float64
	Radius        float64
	FadeIn        float64
	Duration      float64
	TickInterval  float64
	Damage        int
}

// AttackDefinition is the data template of one enemy or boss attack.
type AttackDefinition struct {
	Name     string
	Kind     AttackKind
	Priority int
	// Primary attacks are made ready immediately on phase entry.
	Primary      bool
	Cooldown     float64
	InitialDelay float64
	// Range is the maximum target distance at which the attack may start.
	// Zero means anywhere within detection range.
	Range float64

	Windup   float64
	Active   float64
	Recovery float64

	Damage       int
	HitboxRadius float64
	Knockback    float64

	// SubHits are started SubHitInterval apart inside the active window. Each
	// melee swing or dash lasts HitDuration.
	SubHits        int
	SubHitInterval float64
	HitDuration    float64

	Pattern    Pattern
	Projectile ProjectileDef
	Burst      BurstDef
	Zone       ZoneDef

	ChargeSpeed           float64
	FinalChargeMultiplier float64
	RetreatDistance       float64
	RetreatSpeed          float64
}

// SubHitCount is at least one.
func (a *AttackDefinition) SubHitCount() int {
	if a == nil || a.SubHits < 1 {
		return 1
	}
	return a.SubHits
}

// ActiveDuration stretches the authored active window so every sub-hit fits.
func (a *AttackDefinition) ActiveDuration() float64 {
	if a == nil {
		return 0
	}
	need := float64(a.SubHitCount()-1)*a.SubHitInterval + a.HitDuration
	if a.Active > need {
		return a.Active
	}
	return need
}

// TotalDuration is windup + active + recovery.
func (a *AttackDefinition) TotalDuration() float64 {
	if a == nil {
		return 0
	}
	return a.Windup + a.ActiveDuration() + a.Recovery
}

// AttackSet is the list of attacks an actor may currently select from.
type AttackSet struct {
	Attacks []AttackDefinition
}

var AttackSetComponent = NewComponent[AttackSet]()
