package component

type Faction uint8

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
)

func (f Faction) String() string {
	switch f {
	case FactionPlayer:
		return "player"
	case FactionEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// Hostile reports whether damage from f may land on other. Neutral never
// fights.
func (f Faction) Hostile(other Faction) bool {
	return f != FactionNeutral && other != FactionNeutral && f != other
}

func ParseFaction(s string) Faction {
	switch s {
	case "player":
		return FactionPlayer
	case "enemy":
		return FactionEnemy
	default:
		return FactionNeutral
	}
}
