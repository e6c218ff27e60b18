package component

// BossPhaseDef is applied once when the boss crosses its threshold.
type BossPhaseDef struct {
	SpeedMultiplier  float64
	ChargeMultiplier float64
	Attacks          []AttackDefinition
}

// Boss adds the single, irreversible phase transition to an actor.
type Boss struct {
	Phase     int
	Threshold int
	Next      BossPhaseDef
	EnteredAt float64
}

func (b *Boss) InFirstPhase() bool {
	return b != nil && b.Phase <= 1
}

var BossComponent = NewComponent[Boss]()
