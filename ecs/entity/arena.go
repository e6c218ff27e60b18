package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

// BuildWall creates a static box with its lower-left corner at (X, Y).
func BuildWall(w *ecs.World, spec prefabs.WallSpec) (ecs.Entity, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return 0, fmt.Errorf("wall: size must be positive, got %gx%g", spec.Width, spec.Height)
	}
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.WallComponent.Kind(), &component.Wall{
		Box:               cp.BB{L: spec.X, B: spec.Y, R: spec.X + spec.Width, T: spec.Y + spec.Height},
		BlocksProjectiles: spec.BlocksProjectiles,
	}); err != nil {
		return 0, fmt.Errorf("wall: add wall: %w", err)
	}
	return entity, nil
}

func BuildPickup(w *ecs.World, spec prefabs.PickupPlacement) (ecs.Entity, error) {
	p, err := pickup(spec.PickupSpec)
	if err != nil {
		return 0, err
	}
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.PickupComponent.Kind(), &p); err != nil {
		return 0, fmt.Errorf("pickup: add pickup: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, fmt.Errorf("pickup: add transform: %w", err)
	}
	return entity, nil
}

func BuildGate(w *ecs.World, spec prefabs.GateSpec) (ecs.Entity, error) {
	radius := spec.Radius
	if radius <= 0 {
		radius = 1
	}
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.ExitGateComponent.Kind(), &component.ExitGate{Radius: radius}); err != nil {
		return 0, fmt.Errorf("gate: add gate: %w", err)
	}
	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		return 0, fmt.Errorf("gate: add transform: %w", err)
	}
	return entity, nil
}

// Roster returns the encounter roster singleton, creating it on first use.
func Roster(w *ecs.World) (*component.EncounterRoster, error) {
	if e, ok := ecs.First(w, component.EncounterRosterComponent.Kind()); ok {
		if roster, ok := ecs.Get(w, e, component.EncounterRosterComponent.Kind()); ok {
			return roster, nil
		}
	}
	e := ecs.CreateEntity(w)
	roster := &component.EncounterRoster{}
	if err := ecs.Add(w, e, component.EncounterRosterComponent.Kind(), roster); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}
	return roster, nil
}

// RegisterEnemy adds e to the set of enemies that must die before the gate
// opens.
func RegisterEnemy(w *ecs.World, e ecs.Entity) error {
	roster, err := Roster(w)
	if err != nil {
		return err
	}
	for _, id := range roster.Enemies {
		if id == e.ID() {
			return nil
		}
	}
	roster.Enemies = append(roster.Enemies, e.ID())
	roster.Cleared = false
	return nil
}
