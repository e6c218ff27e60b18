package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const epsilon = 1e-6

func position(w *ecs.World, e ecs.Entity) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: t.X, Y: t.Y}, true
}

// setPosition moves the transform and, when present, the physics body.
func setPosition(w *ecs.World, e ecs.Entity, p cp.Vector) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = p.X
		t.Y = p.Y
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && !body.Static {
		body.Body.SetPosition(p)
	}
}

func velocity(w *ecs.World, e ecs.Entity) cp.Vector {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil {
		return cp.Vector{}
	}
	return body.Body.Velocity()
}

func setVelocity(w *ecs.World, e ecs.Entity, v cp.Vector) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil || body.Static {
		return
	}
	body.Body.SetVelocityVector(v)
}

// steer writes a controller velocity unless a knockback is playing out.
func steer(w *ecs.World, e ecs.Entity, v cp.Vector) {
	if ecs.Has(w, e, component.KnockbackRecoveryComponent.Kind()) {
		return
	}
	setVelocity(w, e, v)
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && math.Abs(v.X) > epsilon {
		t.FacingLeft = v.X < 0
	}
}

// direction returns the unit vector from a to b and the distance between
// them. Coincident points yield the zero vector.
func direction(a, b cp.Vector) (cp.Vector, float64) {
	d := b.Sub(a)
	l := d.Length()
	if l <= epsilon {
		return cp.Vector{}, 0
	}
	return d.Mult(1 / l), l
}

func normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l <= epsilon {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

func facing(w *ecs.World, e ecs.Entity) cp.Vector {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok && t.FacingLeft {
		return cp.Vector{X: -1}
	}
	return cp.Vector{X: 1}
}

func findPlayer(w *ecs.World) (ecs.Entity, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || ecs.Has(w, e, component.DeadComponent.Kind()) {
		return 0, false
	}
	return e, true
}

// living reports whether e exists and has not died.
func living(w *ecs.World, e ecs.Entity) bool {
	return ecs.IsAlive(w, e) && !ecs.Has(w, e, component.DeadComponent.Kind())
}

func factionOf(w *ecs.World, e ecs.Entity) component.Faction {
	if c, ok := ecs.Get(w, e, component.CombatantComponent.Kind()); ok {
		return c.Faction
	}
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		return component.FactionPlayer
	}
	if ecs.Has(w, e, component.EnemyTagComponent.Kind()) {
		return component.FactionEnemy
	}
	return component.FactionNeutral
}

func hurtRadius(w *ecs.World, e ecs.Entity) float64 {
	if h, ok := ecs.Get(w, e, component.HurtboxComponent.Kind()); ok {
		return h.Radius
	}
	if b, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		return b.Radius
	}
	return 0
}

// hurtTargets returns living actors with a hurtbox that faction may damage.
func hurtTargets(w *ecs.World, faction component.Faction) []ecs.Entity {
	var out []ecs.Entity
	ecs.ForEach2(w, component.HurtboxComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, _ *component.Hurtbox, _ *component.Health) {
		if !living(w, e) || !faction.Hostile(factionOf(w, e)) {
			return
		}
		out = append(out, e)
	})
	return out
}

func overlaps(a cp.Vector, ra float64, b cp.Vector, rb float64) bool {
	return a.DistanceSq(b) <= (ra+rb)*(ra+rb)
}

func hitRegistry(w *ecs.World) *component.HitRegistry {
	e, ok := ecs.First(w, component.HitRegistryComponent.Kind())
	if !ok {
		e = ecs.CreateEntity(w)
		if err := ecs.Add(w, e, component.HitRegistryComponent.Kind(), component.NewHitRegistry()); err != nil {
			return nil
		}
	}
	reg, _ := ecs.Get(w, e, component.HitRegistryComponent.Kind())
	return reg
}

// warnOnce logs a configuration gap the first time a key is seen.
type warnOnce struct {
	log  *zap.Logger
	seen map[string]struct{}
}

func newWarnOnce(log *zap.Logger) *warnOnce {
	if log == nil {
		log = zap.NewNop()
	}
	return &warnOnce{log: log, seen: make(map[string]struct{})}
}

func (o *warnOnce) Warn(key, msg string, fields ...zap.Field) {
	if _, ok := o.seen[key]; ok {
		return
	}
	o.seen[key] = struct{}{}
	o.log.Warn(msg, fields...)
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
