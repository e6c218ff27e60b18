package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// SpawnHazardZone drops a lingering damage area at p.
func SpawnHazardZone(w *ecs.World, owner ecs.Entity, p cp.Vector, def component.ZoneDef) ecs.Entity {
	e := ecs.CreateEntity(w)
	zone := &component.HazardZone{Owner: owner.ID(), Faction: factionOf(w, owner), Def: def, NextTick: def.FadeIn}
	if err := ecs.Add(w, e, component.HazardZoneComponent.Kind(), zone); err != nil {
		ecs.DestroyEntity(w, e)
		return 0
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y})
	return e
}

// SpawnGroundBurst telegraphs an explosion at p that goes off after its
// delay.
func SpawnGroundBurst(w *ecs.World, owner ecs.Entity, p cp.Vector, def component.BurstDef) ecs.Entity {
	e := ecs.CreateEntity(w)
	burst := &component.GroundBurst{Owner: owner.ID(), Faction: factionOf(w, owner), Def: def}
	if err := ecs.Add(w, e, component.GroundBurstComponent.Kind(), burst); err != nil {
		ecs.DestroyEntity(w, e)
		return 0
	}
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: p.X, Y: p.Y})
	return e
}

// HazardSystem ticks lingering zones and ground bursts.
type HazardSystem struct {
	damage *DamageResolver
}

func NewHazardSystem(damage *DamageResolver) *HazardSystem {
	return &HazardSystem{damage: damage}
}

func (s *HazardSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	reg := hitRegistry(w)

	ecs.ForEach2(w, component.HazardZoneComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, z *component.HazardZone, t *component.Transform) {
		if z.Elapsed+epsilon >= z.NextTick && z.Elapsed < z.Def.Duration {
			s.strike(w, reg, ecs.Entity(z.Owner), z.Faction, cp.Vector{X: t.X, Y: t.Y}, z.Def.Radius, z.Def.Damage)
			interval := z.Def.TickInterval
			if interval <= 0 {
				interval = z.Def.Duration
			}
			z.NextTick += interval
		}
		z.Elapsed += dt
		if z.Elapsed+epsilon >= z.Def.Duration {
			ecs.DestroyEntity(w, e)
		}
	})

	ecs.ForEach2(w, component.GroundBurstComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.GroundBurst, t *component.Transform) {
		if b.Exploded {
			ecs.DestroyEntity(w, e)
			return
		}
		b.Elapsed += dt
		if b.Elapsed+epsilon < b.Def.Delay {
			return
		}
		b.Exploded = true
		b.Activation = s.strike(w, reg, ecs.Entity(b.Owner), b.Faction, cp.Vector{X: t.X, Y: t.Y}, b.Def.Radius, b.Def.Damage)
	})
}

// strike damages every hostile actor inside the circle once under a fresh
// activation and returns that activation.
func (s *HazardSystem) strike(w *ecs.World, reg *component.HitRegistry, owner ecs.Entity, faction component.Faction, center cp.Vector, radius float64, damage int) uint64 {
	if reg == nil {
		return 0
	}
	activation := reg.Begin()
	for _, target := range hurtTargets(w, faction) {
		tp, ok := position(w, target)
		if !ok || !overlaps(center, radius, tp, hurtRadius(w, target)) {
			continue
		}
		if reg.TryRegisterHit(activation, target.ID()) {
			s.damage.ApplyDamage(w, target, damage, owner)
		}
	}
	reg.End(activation)
	return activation
}
