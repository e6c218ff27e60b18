package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// zoneAction is the ledger action pacing the zone trail of a dash attack.
func zoneAction(attack string) string {
	return attack + "_zone"
}

// attackGap names the missing piece of a definition that cannot run.
func attackGap(def *component.AttackDefinition) string {
	switch def.Kind {
	case component.AttackMelee:
		if def.HitboxRadius <= 0 {
			return "melee attack without hitbox radius"
		}
	case component.AttackDash:
		if def.HitboxRadius <= 0 {
			return "dash attack without hitbox radius"
		}
		if def.ChargeSpeed <= 0 {
			return "dash attack without charge speed"
		}
	case component.AttackVolley, component.AttackLunge:
		if def.Projectile.Speed <= 0 || def.Projectile.Lifetime <= 0 {
			return "missing projectile template"
		}
	case component.AttackBurst:
		if def.Burst.Radius <= 0 {
			return "missing burst template"
		}
	default:
		return "unknown attack kind"
	}
	return ""
}

// startAttack consumes the cooldown and starts the windup. A definition that
// cannot run is reported once and skipped, its cooldown still spent.
func (s *AISystem) startAttack(w *ecs.World, e ecs.Entity, state *component.AIState, def component.AttackDefinition, target cp.Vector, hasTarget bool) {
	MarkFired(w, e, def.Name)
	state.LastAttack = def.Name
	if gap := attackGap(&def); gap != "" {
		s.warn.Warn(e.String()+"/"+def.Name, "attack skipped", zap.Stringer("entity", e), zap.String("attack", def.Name), zap.String("reason", gap))
		return
	}

	self, _ := position(w, e)
	rt := &component.AttackRuntime{Def: def, Stage: component.StageWindup, OriginX: self.X, OriginY: self.Y}
	aim := s.aim(w, e, rt, self, target, hasTarget)
	rt.AimX, rt.AimY = aim.X, aim.Y
	if err := ecs.Add(w, e, component.AttackRuntimeComponent.Kind(), rt); err != nil {
		return
	}
	s.transition(w, state, component.AIAttacking)
	s.log.Debug("attack started", zap.Stringer("entity", e), zap.String("attack", def.Name))
	s.stepAttack(w, e, rt, target, hasTarget)
}

// stepAttack advances the runtime by one tick. Stages whose time is up hand
// over to the next stage within the same tick.
func (s *AISystem) stepAttack(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime, target cp.Vector, hasTarget bool) {
	def := &rt.Def
	self, _ := position(w, e)
	for {
		switch rt.Stage {
		case component.StageWindup:
			if rt.Elapsed+epsilon < def.Windup {
				s.windup(w, e, rt, self, target, hasTarget)
				rt.Elapsed += w.DeltaTime()
				return
			}
			rt.Elapsed -= def.Windup
			rt.Stage = component.StageActive
			steer(w, e, cp.Vector{})

		case component.StageActive:
			n := def.SubHitCount()
			for rt.SubHitsDone < n && rt.Elapsed+epsilon >= float64(rt.SubHitsDone)*def.SubHitInterval {
				s.subHit(w, e, rt, self, target, hasTarget)
				rt.SubHitsDone++
			}
			s.channel(w, e, rt, self)
			if rt.SubHitsDone < n || rt.Elapsed+epsilon < def.ActiveDuration() {
				rt.Elapsed += w.DeltaTime()
				return
			}
			s.endDash(w, e, rt)
			rt.Elapsed -= def.ActiveDuration()
			rt.Stage = component.StageRecovery

		case component.StageRecovery:
			if rt.Elapsed+epsilon < def.Recovery {
				steer(w, e, cp.Vector{})
				rt.Elapsed += w.DeltaTime()
				return
			}
			rt.Stage = component.StageDone

		default:
			ecs.Remove(w, e, component.AttackRuntimeComponent.Kind())
			s.finishAttack(w, e, self, target, hasTarget)
			return
		}
	}
}

// finishAttack hands the actor back to Pursue or Positioning by its current
// distance to the target, or to Idle when there is none.
func (s *AISystem) finishAttack(w *ecs.World, e ecs.Entity, self, target cp.Vector, hasTarget bool) {
	state, ok := ecs.Get(w, e, component.AIStateComponent.Kind())
	if !ok {
		return
	}
	cfg, ok := ecs.Get(w, e, component.AIConfigComponent.Kind())
	if !ok || !hasTarget {
		s.transition(w, state, component.AIIdle)
		return
	}
	_, dist := direction(self, target)
	s.transition(w, state, engagedState(cfg, dist))
}

func (s *AISystem) aim(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime, self, target cp.Vector, hasTarget bool) cp.Vector {
	if hasTarget {
		if d, _ := direction(self, target); d != (cp.Vector{}) {
			return d
		}
	}
	if d := normalize(cp.Vector{X: rt.AimX, Y: rt.AimY}); d != (cp.Vector{}) {
		return d
	}
	return facing(w, e)
}

func (s *AISystem) windup(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime, self, target cp.Vector, hasTarget bool) {
	def := &rt.Def
	if def.Kind != component.AttackLunge || def.RetreatSpeed <= 0 || def.RetreatDistance <= 0 {
		steer(w, e, cp.Vector{})
		return
	}
	if rt.Elapsed+epsilon >= def.RetreatDistance/def.RetreatSpeed {
		steer(w, e, cp.Vector{})
		return
	}
	away := s.aim(w, e, rt, self, target, hasTarget).Neg()
	steer(w, e, away.Mult(def.RetreatSpeed))
}

func (s *AISystem) subHit(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime, self, target cp.Vector, hasTarget bool) {
	def := &rt.Def
	aim := s.aim(w, e, rt, self, target, hasTarget)
	rt.AimX, rt.AimY = aim.X, aim.Y

	switch def.Kind {
	case component.AttackMelee:
		life := def.HitDuration
		if life <= 0 {
			life = def.ActiveDuration()
		}
		if rt.Hitbox != 0 {
			destroyHitbox(w, ecs.Entity(rt.Hitbox))
		}
		reach := def.Range / 2
		rt.Hitbox = SpawnHitbox(w, e, component.Hitbox{
			Radius:      def.HitboxRadius,
			OffsetX:     aim.X * reach,
			OffsetY:     aim.Y * reach,
			FollowOwner: true,
			Damage:      def.Damage,
			Knockback:   def.Knockback,
			Remaining:   life,
		}).ID()

	case component.AttackDash:
		if rt.Hitbox != 0 {
			destroyHitbox(w, ecs.Entity(rt.Hitbox))
		}
		rt.Hitbox = SpawnHitbox(w, e, component.Hitbox{
			Radius:      def.HitboxRadius,
			FollowOwner: true,
			Damage:      def.Damage,
			Knockback:   def.Knockback,
			Remaining:   def.HitDuration,
		}).ID()
		rt.Moving = true

	case component.AttackVolley, component.AttackLunge:
		SpawnProjectiles(w, e, self, aim, def.Projectile, def.Pattern)

	case component.AttackBurst:
		at := self.Add(aim.Mult(def.Range))
		if hasTarget {
			at = target
		}
		if j := def.Burst.Jitter; j > 0 {
			at.X += (s.rng.Float64()*2 - 1) * j
			at.Y += (s.rng.Float64()*2 - 1) * j
		}
		SpawnGroundBurst(w, e, at, def.Burst)
	}
}

// channel runs the continuous part of the active window: the dash movement
// and the zone trail it leaves.
func (s *AISystem) channel(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime, self cp.Vector) {
	def := &rt.Def
	if def.Kind != component.AttackDash || !rt.Moving {
		if def.Kind != component.AttackDash {
			steer(w, e, cp.Vector{})
		}
		return
	}
	current := rt.SubHitsDone - 1
	start := float64(current) * def.SubHitInterval
	if rt.Elapsed+epsilon >= start+def.HitDuration {
		s.endDash(w, e, rt)
		return
	}

	speed := def.ChargeSpeed
	if current == def.SubHitCount()-1 && def.SubHitCount() > 1 && def.FinalChargeMultiplier > 0 {
		speed *= def.FinalChargeMultiplier
	}
	setVelocity(w, e, cp.Vector{X: rt.AimX, Y: rt.AimY}.Mult(speed))
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && rt.AimX != 0 {
		t.FacingLeft = rt.AimX < 0
	}

	if def.Zone.Duration > 0 && def.Zone.Radius > 0 {
		ledger := Ledger(w, e)
		action := zoneAction(def.Name)
		ledger.Register(action, def.Zone.SpawnInterval, 0)
		if ledger.IsReady(action, w.Now()) {
			ledger.MarkFired(action, w.Now())
			SpawnHazardZone(w, e, self, def.Zone)
		}
	}
}

func (s *AISystem) endDash(w *ecs.World, e ecs.Entity, rt *component.AttackRuntime) {
	if rt.Hitbox != 0 {
		destroyHitbox(w, ecs.Entity(rt.Hitbox))
		rt.Hitbox = 0
	}
	if rt.Moving {
		rt.Moving = false
		setVelocity(w, e, cp.Vector{})
	}
}
