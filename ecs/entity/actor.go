package entity

import (
	"fmt"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

type actor struct {
	name    string
	faction component.Faction
	health  int
	radius  float64
	mass    float64
	stagger float64
	blink   float64
	grace   float64
	color   *prefabs.YAMLColor
	x, y    float64
}

// addActor attaches what every damageable, moving character carries.
func addActor(w *ecs.World, e ecs.Entity, a actor) error {
	if a.health <= 0 {
		return fmt.Errorf("%s: health must be positive, got %d", a.name, a.health)
	}
	if a.radius <= 0 {
		a.radius = 0.5
	}
	if a.mass <= 0 {
		a.mass = 1
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: a.x, Y: a.y}); err != nil {
		return fmt.Errorf("add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: a.health, Max: a.health}); err != nil {
		return fmt.Errorf("add health: %w", err)
	}
	if err := ecs.Add(w, e, component.CombatantComponent.Kind(), &component.Combatant{
		Name:               a.name,
		Faction:            a.faction,
		StaggerDuration:    a.stagger,
		BlinkInvincibility: a.blink,
		DeathGrace:         a.grace,
	}); err != nil {
		return fmt.Errorf("add combatant: %w", err)
	}
	if err := ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: a.radius}); err != nil {
		return fmt.Errorf("add hurtbox: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: a.radius, Mass: a.mass}); err != nil {
		return fmt.Errorf("add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.AppearanceComponent.Kind(), appearance(a.name, a.color)); err != nil {
		return fmt.Errorf("add appearance: %w", err)
	}
	return nil
}
