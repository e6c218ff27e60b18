package entity

import (
	"fmt"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
)

// Placement positions a built entity and optionally joins an alert group.
type Placement struct {
	X, Y  float64
	Group string
}

func NewEnemy(w *ecs.World, prefab string, at Placement) (ecs.Entity, error) {
	spec, err := prefabs.LoadArchetype(prefab)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}
	return BuildEnemy(w, spec, at)
}

// BuildEnemy creates an enemy or boss from its archetype and registers it on
// the encounter roster.
func BuildEnemy(w *ecs.World, spec *prefabs.ArchetypeSpec, at Placement) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("enemy: nil spec")
	}
	drops, err := dropTable(spec.Drops)
	if err != nil {
		return 0, fmt.Errorf("enemy %s: %w", spec.Name, err)
	}

	entity := ecs.CreateEntity(w)
	if err := buildEnemy(w, entity, spec, at, drops); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy %s: %w", spec.Name, err)
	}
	if err := RegisterEnemy(w, entity); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("enemy %s: %w", spec.Name, err)
	}
	return entity, nil
}

func buildEnemy(w *ecs.World, entity ecs.Entity, spec *prefabs.ArchetypeSpec, at Placement, drops *component.DropTable) error {
	if err := addActor(w, entity, actor{
		name:    spec.Name,
		faction: component.FactionEnemy,
		health:  spec.Health,
		radius:  spec.Radius,
		mass:    spec.Mass,
		stagger: spec.StaggerDuration,
		blink:   spec.BlinkInvincibility,
		grace:   spec.DeathGrace,
		color:   spec.Color,
		x:       at.X,
		y:       at.Y,
	}); err != nil {
		return err
	}

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return fmt.Errorf("add enemy tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.AIConfigComponent.Kind(), &component.AIConfig{
		DetectionRange:       spec.AI.DetectionRange,
		AttackRange:          spec.AI.AttackRange,
		MoveSpeed:            spec.AI.MoveSpeed,
		PreferredMin:         spec.AI.PreferredMin,
		PreferredMax:         spec.AI.PreferredMax,
		RetreatDistance:      spec.AI.RetreatDistance,
		ApproachFactor:       spec.AI.ApproachFactor,
		AdjustFactor:         spec.AI.AdjustFactor,
		WanderInterval:       spec.AI.WanderInterval,
		StaggerHaltsMovement: spec.StaggerHaltsMovement,
		SpeedMultiplier:      1,
	}); err != nil {
		return fmt.Errorf("add ai config: %w", err)
	}
	if err := ecs.Add(w, entity, component.AIStateComponent.Kind(), &component.AIState{Current: component.AIIdle, Since: w.Now()}); err != nil {
		return fmt.Errorf("add ai state: %w", err)
	}

	attacks := attackDefinitions(spec.Attacks)
	if err := ecs.Add(w, entity, component.AttackSetComponent.Kind(), &component.AttackSet{Attacks: attacks}); err != nil {
		return fmt.Errorf("add attacks: %w", err)
	}
	system.RegisterAttacks(w, entity, attacks)

	if spec.Boss != nil {
		if err := ecs.Add(w, entity, component.BossComponent.Kind(), &component.Boss{
			Phase:     1,
			Threshold: spec.Boss.Threshold,
			Next: component.BossPhaseDef{
				SpeedMultiplier:  spec.Boss.SpeedMultiplier,
				ChargeMultiplier: spec.Boss.ChargeMultiplier,
				Attacks:          attackDefinitions(spec.Boss.Attacks),
			},
		}); err != nil {
			return fmt.Errorf("add boss: %w", err)
		}
	}
	if at.Group != "" {
		if err := ecs.Add(w, entity, component.AlertGroupComponent.Kind(), &component.AlertGroup{Name: at.Group, Range: spec.GroupRange}); err != nil {
			return fmt.Errorf("add alert group: %w", err)
		}
	}
	if spec.Script != "" {
		if err := ecs.Add(w, entity, component.AttackScriptComponent.Kind(), &component.AttackScript{Path: spec.Script}); err != nil {
			return fmt.Errorf("add attack script: %w", err)
		}
	}
	if spec.Contact != nil {
		if err := ecs.Add(w, entity, component.ContactDamageComponent.Kind(), &component.ContactDamage{
			Damage:   spec.Contact.Damage,
			Interval: spec.Contact.Interval,
		}); err != nil {
			return fmt.Errorf("add contact damage: %w", err)
		}
	}
	if len(drops.Entries) > 0 {
		if err := ecs.Add(w, entity, component.DropTableComponent.Kind(), drops); err != nil {
			return fmt.Errorf("add drops: %w", err)
		}
	}
	return nil
}
