package component

// MovementMode is the exclusive movement state of the player.
type MovementMode uint8

const (
	ModeNormal MovementMode = iota
	ModeDashing
	ModeDefending
)

func (m MovementMode) String() string {
	switch m {
	case ModeDashing:
		return "dashing"
	case ModeDefending:
		return "defending"
	default:
		return "normal"
	}
}

// PlayerTuning holds the player's authored constants.
type PlayerTuning struct {
	MoveSpeed float64

	AttackCooldown float64
	SlashDamage    int
	SlashRadius    float64
	SlashOffset    float64
	SlashDuration  float64

	Fireball  ProjectileDef
	Explosion ExplosionDef

	DashDistance float64
	DashDuration float64

	DefenseMaxDuration float64

	Cooldowns map[AbilityID]float64
}

// ExplosionDef is the area blast cast around the player.
type ExplosionDef struct {
	Radius   float64
	Damage   int
	Duration float64
}

// PlayerController is the runtime movement state of the player.
type PlayerController struct {
	Mode MovementMode

	DashDirX      float64
	DashDirY      float64
	DashSpeed     float64
	DashRemaining float64

	DefenseRemaining float64
	// DefenseHeldSeen records that the defense button was seen held during
	// the current defense. Only a release after that ends it early.
	DefenseHeldSeen bool

	StunRemaining float64

	LastAimX float64
	LastAimY float64
}

func (p *PlayerController) Defending() bool {
	return p != nil && p.Mode == ModeDefending
}

func (p *PlayerController) Dashing() bool {
	return p != nil && p.Mode == ModeDashing
}

func (p *PlayerController) Stunned() bool {
	return p != nil && p.StunRemaining > 0
}

var PlayerTuningComponent = NewComponent[PlayerTuning]()
var PlayerControllerComponent = NewComponent[PlayerController]()
