package entity

import (
	"fmt"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func NewTrap(w *ecs.World, prefab string, x, y float64, linked ecs.Entity) (ecs.Entity, error) {
	spec, err := prefabs.LoadTrapSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("trap: load spec: %w", err)
	}
	return BuildTrap(w, spec, x, y, linked)
}

// BuildTrap creates a turret. Traps have no health and never block the gate.
// A non-zero linked boss shuts the trap down when that boss dies.
func BuildTrap(w *ecs.World, spec *prefabs.TrapSpec, x, y float64, linked ecs.Entity) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("trap: nil spec")
	}
	active := true
	if spec.StartActive != nil {
		active = *spec.StartActive
	}

	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("trap: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.CombatantComponent.Kind(), &component.Combatant{Name: spec.Name, Faction: component.FactionEnemy}); err != nil {
		return 0, fmt.Errorf("trap: add combatant: %w", err)
	}
	if err := ecs.Add(w, entity, component.TurretComponent.Kind(), &component.Turret{
		DetectionRange: spec.DetectionRange,
		LinkedBoss:     linked.ID(),
		Active:         active,
		FireInterval:   spec.FireInterval,
		BurstDelay:     spec.BurstDelay,
		Pattern:        pattern(spec.Pattern),
		Projectile:     projectileDef(spec.Projectile),
	}); err != nil {
		return 0, fmt.Errorf("trap: add turret: %w", err)
	}
	if err := ecs.Add(w, entity, component.AppearanceComponent.Kind(), appearance(spec.Name, spec.Color)); err != nil {
		return 0, fmt.Errorf("trap: add appearance: %w", err)
	}

	ledger := component.NewCooldownLedger()
	first := 0.0
	if spec.FireInterval > 0 {
		first = w.Now() + spec.FireInterval
	}
	ledger.Register("volley", spec.FireInterval, first)
	if err := ecs.Add(w, entity, component.CooldownLedgerComponent.Kind(), ledger); err != nil {
		return 0, fmt.Errorf("trap: add cooldowns: %w", err)
	}
	return entity, nil
}
