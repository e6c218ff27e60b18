package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// SpawnHitbox opens a damage window for owner. The hitbox gets a fresh hit
// registry activation and is placed at the owner plus its offset.
func SpawnHitbox(w *ecs.World, owner ecs.Entity, hb component.Hitbox) ecs.Entity {
	if w == nil {
		return 0
	}
	hb.Owner = owner.ID()
	if hb.Faction == component.FactionNeutral {
		hb.Faction = factionOf(w, owner)
	}
	if reg := hitRegistry(w); reg != nil {
		hb.Activation = reg.Begin()
	}
	origin, _ := position(w, owner)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.HitboxComponent.Kind(), &hb); err != nil {
		ecs.DestroyEntity(w, e)
		return 0
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: origin.X + hb.OffsetX, Y: origin.Y + hb.OffsetY})
	return e
}

// RearmHitbox clears the targets a live hitbox already struck.
func RearmHitbox(w *ecs.World, e ecs.Entity) {
	hb, ok := ecs.Get(w, e, component.HitboxComponent.Kind())
	if !ok {
		return
	}
	if reg := hitRegistry(w); reg != nil {
		reg.Reset(hb.Activation)
	}
}

func destroyHitbox(w *ecs.World, e ecs.Entity) {
	hb, ok := ecs.Get(w, e, component.HitboxComponent.Kind())
	if !ok {
		return
	}
	if reg := hitRegistry(w); reg != nil {
		reg.End(hb.Activation)
	}
	ecs.DestroyEntity(w, e)
}

// HitboxSystem applies hitbox damage at most once per target per activation
// and expires hitboxes.
type HitboxSystem struct {
	damage *DamageResolver
}

func NewHitboxSystem(damage *DamageResolver) *HitboxSystem {
	return &HitboxSystem{damage: damage}
}

func (s *HitboxSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	reg := hitRegistry(w)

	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, hb *component.Hitbox, t *component.Transform) {
		owner := ecs.Entity(hb.Owner)
		if hb.FollowOwner {
			op, ok := position(w, owner)
			if !ok || !living(w, owner) {
				destroyHitbox(w, e)
				return
			}
			t.X = op.X + hb.OffsetX
			t.Y = op.Y + hb.OffsetY
		}

		center := cp.Vector{X: t.X, Y: t.Y}
		for _, target := range hurtTargets(w, hb.Faction) {
			if target == owner {
				continue
			}
			tp, ok := position(w, target)
			if !ok || !overlaps(center, hb.Radius, tp, hurtRadius(w, target)) {
				continue
			}
			if reg == nil || !reg.TryRegisterHit(hb.Activation, target.ID()) {
				continue
			}
			outcome := s.damage.ApplyDamage(w, target, hb.Damage, owner)
			if outcome == component.DamageStaggered && hb.Knockback > 0 {
				requestKnockback(w, target, &component.DamageKnockback{SourceX: center.X, SourceY: center.Y, Impulse: hb.Knockback})
			}
		}

		hb.Remaining -= dt
		if hb.Remaining <= epsilon {
			destroyHitbox(w, e)
		}
	})
}
