package component

// DamageOutcome is the result of one damage application.
type DamageOutcome uint8

const (
	DamageIgnored DamageOutcome = iota
	DamageStaggered
	DamageDied
)

func (o DamageOutcome) String() string {
	switch o {
	case DamageStaggered:
		return "staggered"
	case DamageDied:
		return "died"
	default:
		return "ignored"
	}
}
