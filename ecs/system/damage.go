package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// DamageResolver is the single path through which health changes. Every
// system that deals damage holds the same resolver.
type DamageResolver struct {
	log     *zap.Logger
	noTrace map[ecs.Entity]struct{}
}

func NewDamageResolver(log *zap.Logger) *DamageResolver {
	return &DamageResolver{
		log:     orNop(log),
		noTrace: make(map[ecs.Entity]struct{}),
	}
}

// ApplyDamage resolves one hit on target. Dead, defending and invulnerable
// targets are checked in that order and ignore the hit. A lethal hit marks the
// target dead and halts its attacks; any other hit staggers it and may push a
// boss into its second phase.
func (r *DamageResolver) ApplyDamage(w *ecs.World, target ecs.Entity, amount int, source ecs.Entity) component.DamageOutcome {
	if w == nil || !ecs.IsAlive(w, target) {
		return component.DamageIgnored
	}
	outcome := r.resolve(w, target, amount, source)
	w.Events().Push(ecs.Event{
		Kind:    ecs.EventDamageDealt,
		Time:    w.Now(),
		Entity:  target,
		Source:  source,
		Amount:  amount,
		Outcome: outcome,
	})
	if outcome == component.DamageDied {
		w.Events().Push(ecs.Event{
			Kind:   ecs.EventActorDied,
			Time:   w.Now(),
			Entity: target,
			Source: source,
		})
	}
	return outcome
}

func (r *DamageResolver) resolve(w *ecs.World, target ecs.Entity, amount int, source ecs.Entity) component.DamageOutcome {
	if ecs.Has(w, target, component.DeadComponent.Kind()) {
		r.log.Debug("damage to dead actor ignored", zap.Stringer("target", target))
		return component.DamageIgnored
	}
	if pc, ok := ecs.Get(w, target, component.PlayerControllerComponent.Kind()); ok && pc.Defending() {
		return component.DamageIgnored
	}
	if inv, ok := ecs.Get(w, target, component.InvulnerableComponent.Kind()); ok && inv.Remaining > 0 {
		return component.DamageIgnored
	}
	if amount <= 0 {
		return component.DamageIgnored
	}
	health, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		if _, traced := r.noTrace[target]; !traced {
			r.noTrace[target] = struct{}{}
			r.log.Debug("damage to entity without health ignored", zap.Stringer("target", target))
		}
		return component.DamageIgnored
	}

	health.Current -= amount
	if health.Current < 0 {
		health.Current = 0
	}
	alertOnDamage(w, target)

	if health.Current == 0 {
		r.kill(w, target)
		r.log.Debug("actor died", zap.Stringer("target", target), zap.Stringer("source", source))
		return component.DamageDied
	}

	cfg, _ := ecs.Get(w, target, component.CombatantComponent.Kind())
	if cfg != nil && cfg.StaggerDuration > 0 {
		if st, ok := ecs.Get(w, target, component.StaggerComponent.Kind()); ok {
			st.Remaining = cfg.StaggerDuration
		} else {
			_ = ecs.Add(w, target, component.StaggerComponent.Kind(), &component.Stagger{Remaining: cfg.StaggerDuration})
		}
	}
	if cfg != nil && cfg.BlinkInvincibility > 0 {
		grantInvulnerable(w, target, cfg.BlinkInvincibility)
	}

	if boss, ok := ecs.Get(w, target, component.BossComponent.Kind()); ok && boss.InFirstPhase() && health.Current <= boss.Threshold {
		EnterPhase2(w, target, r.log)
	}
	return component.DamageStaggered
}

// kill adds the Dead marker and stops everything the actor had scheduled.
func (r *DamageResolver) kill(w *ecs.World, target ecs.Entity) {
	now := w.Now()
	grace := 0.0
	if cfg, ok := ecs.Get(w, target, component.CombatantComponent.Kind()); ok {
		grace = cfg.DeathGrace
	}
	_ = ecs.Add(w, target, component.DeadComponent.Kind(), &component.Dead{At: now, RemoveAt: now + grace})

	ecs.Remove(w, target, component.AttackRuntimeComponent.Kind())
	ecs.Remove(w, target, component.StaggerComponent.Kind())
	ecs.Remove(w, target, component.KnockbackRecoveryComponent.Kind())
	if state, ok := ecs.Get(w, target, component.AIStateComponent.Kind()); ok {
		state.Current = component.AIDead
		state.Since = now
	}
	if pc, ok := ecs.Get(w, target, component.PlayerControllerComponent.Kind()); ok {
		pc.Mode = component.ModeNormal
		pc.DashRemaining = 0
		pc.DefenseRemaining = 0
	}
	destroyOwnedHitboxes(w, target)
	setVelocity(w, target, cp.Vector{})
}

func destroyOwnedHitboxes(w *ecs.World, owner ecs.Entity) {
	reg := hitRegistry(w)
	ecs.ForEach(w, component.HitboxComponent.Kind(), func(e ecs.Entity, hb *component.Hitbox) {
		if hb.Owner != owner.ID() {
			return
		}
		if reg != nil {
			reg.End(hb.Activation)
		}
		ecs.DestroyEntity(w, e)
	})
}
