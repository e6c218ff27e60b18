package component

type AttackStage uint8

const (
	StageWindup AttackStage = iota
	StageActive
	StageRecovery
	StageDone
)

func (s AttackStage) String() string {
	switch s {
	case StageWindup:
		return "windup"
	case StageActive:
		return "active"
	case StageRecovery:
		return "recovery"
	default:
		return "done"
	}
}

// AttackRuntime is the in-flight state of one attack. It holds a copy of the
// definition so a phase swap never changes an attack already running.
type AttackRuntime struct {
	Def     AttackDefinition
	Stage   AttackStage
	Elapsed float64
	// SubHitsDone counts sub-hits started in the active window.
	SubHitsDone int
	// Hitbox is the entity of the current melee or dash hitbox, zero if none.
	Hitbox uint64
	// AimX, AimY is the unit direction captured for the current sub-hit.
	AimX    float64
	AimY    float64
	Moving  bool
	OriginX float64
	OriginY float64
}

var AttackRuntimeComponent = NewComponent[AttackRuntime]()
