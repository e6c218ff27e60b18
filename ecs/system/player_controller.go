package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// PlayerControllerSystem turns input into velocity and runs the exclusive
// dash and defense modes.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach2(w, component.PlayerControllerComponent.Kind(), component.PlayerTuningComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, tuning *component.PlayerTuning) {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			setVelocity(w, e, cp.Vector{})
			return
		}
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		if input == nil {
			input = &component.Input{}
		}
		if aim := (cp.Vector{X: input.AimX, Y: input.AimY}); aim.LengthSq() > epsilon {
			aim = normalize(aim)
			pc.LastAimX, pc.LastAimY = aim.X, aim.Y
		}

		if pc.StunRemaining > 0 {
			pc.StunRemaining -= dt
			if pc.StunRemaining < epsilon {
				pc.StunRemaining = 0
			}
		}

		switch pc.Mode {
		case component.ModeDashing:
			// the dash owns the velocity for its whole duration
			setVelocity(w, e, cp.Vector{X: pc.DashDirX, Y: pc.DashDirY}.Mult(pc.DashSpeed))
			pc.DashRemaining -= dt
			if pc.DashRemaining <= epsilon {
				pc.DashRemaining = 0
				pc.Mode = component.ModeNormal
			}
			return
		case component.ModeDefending:
			steer(w, e, cp.Vector{})
			pc.DefenseRemaining -= dt
			released := pc.DefenseHeldSeen && !input.DefenseHeld
			if input.DefenseHeld {
				pc.DefenseHeldSeen = true
			}
			if released || pc.DefenseRemaining <= epsilon {
				pc.DefenseRemaining = 0
				pc.DefenseHeldSeen = false
				pc.Mode = component.ModeNormal
			}
			return
		}

		if pc.Stunned() {
			steer(w, e, cp.Vector{})
			return
		}
		move := cp.Vector{X: input.MoveX, Y: input.MoveY}
		if move.LengthSq() > 1 {
			move = normalize(move)
		}
		steer(w, e, move.Mult(tuning.MoveSpeed))
	})
}

// ApplyStun freezes the player's movement and actions for at least d seconds.
func ApplyStun(w *ecs.World, e ecs.Entity, d float64) {
	pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if !ok || d <= 0 || ecs.Has(w, e, component.DeadComponent.Kind()) {
		return
	}
	if pc.StunRemaining < d {
		pc.StunRemaining = d
	}
}

// aimOf is the current aim, else the last aim, else the facing direction.
func aimOf(w *ecs.World, e ecs.Entity, pc *component.PlayerController, input *component.Input) cp.Vector {
	if input != nil {
		if aim := normalize(cp.Vector{X: input.AimX, Y: input.AimY}); aim != (cp.Vector{}) {
			return aim
		}
	}
	if pc != nil {
		if aim := normalize(cp.Vector{X: pc.LastAimX, Y: pc.LastAimY}); aim != (cp.Vector{}) {
			return aim
		}
	}
	return facing(w, e)
}
