package component

// AbilityID names a player skill.
type AbilityID string

const (
	AbilityFireball  AbilityID = "fireball"
	AbilityExplosion AbilityID = "explosion"
	AbilityDefense   AbilityID = "defense"
	AbilityDash      AbilityID = "dash"
)

// AbilityOrder maps input slots 1..4 to abilities.
var AbilityOrder = [4]AbilityID{AbilityFireball, AbilityExplosion, AbilityDefense, AbilityDash}

func ParseAbility(s string) (AbilityID, bool) {
	switch id := AbilityID(s); id {
	case AbilityFireball, AbilityExplosion, AbilityDefense, AbilityDash:
		return id, true
	}
	return "", false
}

// Abilities holds the permanent unlock flags.
type Abilities struct {
	Fireball  bool
	Explosion bool
	Defense   bool
	Dash      bool
}

func (a *Abilities) Unlocked(id AbilityID) bool {
	if a == nil {
		return false
	}
	switch id {
	case AbilityFireball:
		return a.Fireball
	case AbilityExplosion:
		return a.Explosion
	case AbilityDefense:
		return a.Defense
	case AbilityDash:
		return a.Dash
	}
	return false
}

// Unlock sets the flag and reports whether it was newly granted.
func (a *Abilities) Unlock(id AbilityID) bool {
	if a == nil || a.Unlocked(id) {
		return false
	}
	switch id {
	case AbilityFireball:
		a.Fireball = true
	case AbilityExplosion:
		a.Explosion = true
	case AbilityDefense:
		a.Defense = true
	case AbilityDash:
		a.Dash = true
	default:
		return false
	}
	return true
}

var AbilitiesComponent = NewComponent[Abilities]()
