package component

// Input is the per-tick intent of the player, filled by the host adapter.
// Pressed flags are true only on the tick the button went down.
type Input struct {
	MoveX float64
	MoveY float64
	AimX  float64
	AimY  float64

	Attack   bool
	Ability  [4]bool
	Interact bool

	// DefenseHeld reports the defense key as held. Defense ends early only
	// when it goes false after having been seen true; callers that never set
	// it get the full defense duration.
	DefenseHeld bool
}

var InputComponent = NewComponent[Input]()
