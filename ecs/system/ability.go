package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const attackAction = "attack"

// AbilitySystem reads the pressed buttons of the player and fires the basic
// slash and the unlocked abilities through the cooldown ledger.
type AbilitySystem struct {
	log *zap.Logger
}

func NewAbilitySystem(log *zap.Logger) *AbilitySystem {
	return &AbilitySystem{log: orNop(log)}
}

func (s *AbilitySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, pc *component.PlayerController, input *component.Input) {
		if input.Attack {
			s.slash(w, e, pc, input)
		}
		for slot, pressed := range input.Ability {
			if pressed {
				s.TryActivate(w, e, component.AbilityOrder[slot])
			}
		}
	})
}

// Unlock grants ability id to e permanently. The unlock event is emitted only
// the first time.
func Unlock(w *ecs.World, e ecs.Entity, id component.AbilityID) bool {
	abilities, ok := ecs.Get(w, e, component.AbilitiesComponent.Kind())
	if !ok {
		abilities = &component.Abilities{}
		if err := ecs.Add(w, e, component.AbilitiesComponent.Kind(), abilities); err != nil {
			return false
		}
	}
	if !abilities.Unlock(id) {
		return false
	}
	w.Events().Push(ecs.Event{Kind: ecs.EventAbilityUnlocked, Time: w.Now(), Entity: e, Ability: id})
	return true
}

// TryActivate fires ability id when it is unlocked and ready and the player is
// free to act. Failures are silent apart from a debug line.
func (s *AbilitySystem) TryActivate(w *ecs.World, e ecs.Entity, id component.AbilityID) bool {
	pc, tuning, reason := s.blocked(w, e, id)
	if reason != "" {
		s.log.Debug("ability not activated", zap.String("ability", string(id)), zap.String("reason", reason))
		return false
	}
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	origin, _ := position(w, e)

	switch id {
	case component.AbilityFireball:
		SpawnProjectiles(w, e, origin, aimOf(w, e, pc, input), tuning.Fireball, component.Pattern{Kind: component.PatternSingle})
	case component.AbilityExplosion:
		SpawnHitbox(w, e, component.Hitbox{
			Radius:      tuning.Explosion.Radius,
			Damage:      tuning.Explosion.Damage,
			Remaining:   tuning.Explosion.Duration,
			FollowOwner: true,
		})
	case component.AbilityDefense:
		pc.Mode = component.ModeDefending
		pc.DefenseRemaining = tuning.DefenseMaxDuration
		pc.DefenseHeldSeen = false
	case component.AbilityDash:
		dir := component.Input{}
		if input != nil {
			dir = *input
		}
		d := normalize(cp.Vector{X: dir.MoveX, Y: dir.MoveY})
		if d == (cp.Vector{}) {
			d = aimOf(w, e, pc, input)
		}
		pc.Mode = component.ModeDashing
		pc.DashDirX, pc.DashDirY = d.X, d.Y
		pc.DashSpeed = tuning.DashDistance / tuning.DashDuration
		pc.DashRemaining = tuning.DashDuration
		grantInvulnerable(w, e, tuning.DashDuration)
	}

	MarkFired(w, e, string(id))
	w.Events().Push(ecs.Event{Kind: ecs.EventAbilityActivated, Time: w.Now(), Entity: e, Ability: id})
	return true
}

// blocked reports why id cannot fire, or "" with the player's controller and
// tuning when it can.
func (s *AbilitySystem) blocked(w *ecs.World, e ecs.Entity, id component.AbilityID) (*component.PlayerController, *component.PlayerTuning, string) {
	if !living(w, e) {
		return nil, nil, "dead"
	}
	abilities, _ := ecs.Get(w, e, component.AbilitiesComponent.Kind())
	if !abilities.Unlocked(id) {
		return nil, nil, "locked"
	}
	pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if !ok {
		return nil, nil, "no controller"
	}
	tuning, ok := ecs.Get(w, e, component.PlayerTuningComponent.Kind())
	if !ok {
		return nil, nil, "no tuning"
	}
	if pc.Stunned() {
		return nil, nil, "stunned"
	}
	if pc.Mode != component.ModeNormal {
		return nil, nil, pc.Mode.String()
	}
	if id == component.AbilityDash && tuning.DashDuration <= 0 {
		return nil, nil, "dash has no duration"
	}
	if !IsReady(w, e, string(id)) {
		return nil, nil, "cooldown"
	}
	return pc, tuning, ""
}

func (s *AbilitySystem) slash(w *ecs.World, e ecs.Entity, pc *component.PlayerController, input *component.Input) {
	tuning, ok := ecs.Get(w, e, component.PlayerTuningComponent.Kind())
	if !ok || !living(w, e) || pc.Stunned() || pc.Mode != component.ModeNormal {
		return
	}
	if !TryFire(w, e, attackAction) {
		return
	}
	aim := aimOf(w, e, pc, input)
	SpawnHitbox(w, e, component.Hitbox{
		Radius:      tuning.SlashRadius,
		OffsetX:     aim.X * tuning.SlashOffset,
		OffsetY:     aim.Y * tuning.SlashOffset,
		FollowOwner: true,
		Damage:      tuning.SlashDamage,
		Remaining:   tuning.SlashDuration,
	})
}
