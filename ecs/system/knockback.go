package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	knockbackMaxDeltaV = 28.0
	knockbackRecovery  = 0.2
	knockbackFriction  = 8.0
)

func requestKnockback(w *ecs.World, target ecs.Entity, req *component.DamageKnockback) {
	if req == nil || req.Impulse <= 0 {
		return
	}
	_ = ecs.Add(w, target, component.DamageKnockbackRequestComponent.Kind(), req)
}

// KnockbackSystem turns knockback requests into impulses on the target body
// and lets the resulting velocity bleed off during a short recovery in which
// controllers do not steer.
type KnockbackSystem struct{}

func NewKnockbackSystem() *KnockbackSystem {
	return &KnockbackSystem{}
}

func (s *KnockbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.KnockbackRecoveryComponent.Kind(), func(e ecs.Entity, rec *component.KnockbackRecovery) {
		rec.Remaining -= dt
		if rec.Remaining <= epsilon {
			ecs.Remove(w, e, component.KnockbackRecoveryComponent.Kind())
			setVelocity(w, e, cp.Vector{})
			return
		}
		setVelocity(w, e, velocity(w, e).Mult(math.Max(0, 1-knockbackFriction*dt)))
	})

	ecs.ForEach(w, component.DamageKnockbackRequestComponent.Kind(), func(e ecs.Entity, req *component.DamageKnockback) {
		ecs.Remove(w, e, component.DamageKnockbackRequestComponent.Kind())
		if !living(w, e) {
			return
		}
		if applyKnockback(w, e, req) {
			_ = ecs.Add(w, e, component.KnockbackRecoveryComponent.Kind(), &component.KnockbackRecovery{Remaining: knockbackRecovery})
		}
	})
}

func applyKnockback(w *ecs.World, target ecs.Entity, req *component.DamageKnockback) bool {
	body, ok := ecs.Get(w, target, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil || body.Static {
		return false
	}
	var n cp.Vector
	if req.Directional {
		n = normalize(cp.Vector{X: req.DirX, Y: req.DirY})
	} else {
		center, _ := position(w, target)
		n, _ = direction(cp.Vector{X: req.SourceX, Y: req.SourceY}, center)
	}
	if n == (cp.Vector{}) {
		n = facing(w, target).Neg()
	}

	body.Body.ApplyImpulseAtWorldPoint(n.Mult(req.Impulse), body.Body.Position())

	// cap the velocity gained along n so stacked hits don't launch the target
	v := body.Body.Velocity()
	along := v.Dot(n)
	if along > knockbackMaxDeltaV {
		tangent := v.Sub(n.Mult(along))
		body.Body.SetVelocityVector(tangent.Add(n.Mult(knockbackMaxDeltaV)))
	}
	return true
}
