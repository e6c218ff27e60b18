package component

// AIStateID names a state of the enemy controller.
type AIStateID string

const (
	AIIdle        AIStateID = "idle"
	AIPursue      AIStateID = "pursue"
	AIPositioning AIStateID = "positioning"
	AIAttacking   AIStateID = "attacking"
	AIDead        AIStateID = "dead"
)

// AIConfig parameterizes the shared enemy controller. Melee archetypes leave
// PreferredMax at zero and close to AttackRange.
type AIConfig struct {
	DetectionRange float64
	AttackRange    float64
	MoveSpeed      float64

	PreferredMin    float64
	PreferredMax    float64
	RetreatDistance float64
	ApproachFactor  float64
	AdjustFactor    float64

	WanderInterval float64

	// StaggerHaltsMovement freezes movement and new attack selection while
	// staggered. Running attacks always finish.
	StaggerHaltsMovement bool
	// SpeedMultiplier scales movement and charge speed. Phase entry raises it.
	SpeedMultiplier float64
}

func (c *AIConfig) Ranged() bool {
	return c != nil && c.PreferredMax > 0
}

// AIState is the runtime of the controller.
type AIState struct {
	Current   AIStateID
	Since     float64
	Alerted   bool
	WanderDir float64
	// LastAttack is the name of the most recently started attack.
	LastAttack string
}

var AIConfigComponent = NewComponent[AIConfig]()
var AIStateComponent = NewComponent[AIState]()
