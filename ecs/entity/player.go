package entity

import (
	"fmt"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func NewPlayerAt(w *ecs.World, x, y float64) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}
	return BuildPlayer(w, spec, x, y)
}

func BuildPlayer(w *ecs.World, spec *prefabs.PlayerSpec, x, y float64) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}
	tuning, err := playerTuning(spec)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	abilities := &component.Abilities{}
	for _, name := range spec.Unlocked {
		id, ok := component.ParseAbility(name)
		if !ok {
			return 0, fmt.Errorf("player: unknown ability %q", name)
		}
		abilities.Unlock(id)
	}

	entity := ecs.CreateEntity(w)
	if err := addActor(w, entity, actor{
		name:    spec.Name,
		faction: component.FactionPlayer,
		health:  spec.Health,
		radius:  spec.Radius,
		mass:    spec.Mass,
		stagger: spec.StaggerDuration,
		blink:   spec.BlinkInvincibility,
		color:   spec.Color,
		x:       x,
		y:       y,
	}); err != nil {
		ecs.DestroyEntity(w, entity)
		return 0, fmt.Errorf("player: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerTuningComponent.Kind(), tuning); err != nil {
		return 0, fmt.Errorf("player: add tuning: %w", err)
	}
	if err := ecs.Add(w, entity, component.PlayerControllerComponent.Kind(), &component.PlayerController{LastAimX: 1}); err != nil {
		return 0, fmt.Errorf("player: add controller: %w", err)
	}
	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, entity, component.AbilitiesComponent.Kind(), abilities); err != nil {
		return 0, fmt.Errorf("player: add abilities: %w", err)
	}

	ledger := component.NewCooldownLedger()
	ledger.Register("attack", tuning.AttackCooldown, 0)
	for id, cd := range tuning.Cooldowns {
		ledger.Register(string(id), cd, 0)
	}
	if err := ecs.Add(w, entity, component.CooldownLedgerComponent.Kind(), ledger); err != nil {
		return 0, fmt.Errorf("player: add cooldowns: %w", err)
	}
	return entity, nil
}

func playerTuning(spec *prefabs.PlayerSpec) (*component.PlayerTuning, error) {
	t := &component.PlayerTuning{
		MoveSpeed:      spec.MoveSpeed,
		AttackCooldown: spec.Attack.Cooldown,
		SlashDamage:    spec.Attack.Damage,
		SlashRadius:    spec.Attack.Radius,
		SlashOffset:    spec.Attack.Offset,
		SlashDuration:  spec.Attack.Duration,
		Fireball:       projectileDef(spec.Fireball),
		Explosion: component.ExplosionDef{
			Radius:   spec.Explosion.Radius,
			Damage:   spec.Explosion.Damage,
			Duration: spec.Explosion.Duration,
		},
		DashDistance:       spec.Dash.Distance,
		DashDuration:       spec.Dash.Duration,
		DefenseMaxDuration: spec.Defense.MaxDuration,
		Cooldowns:          make(map[component.AbilityID]float64, len(spec.Cooldowns)),
	}
	for name, cd := range spec.Cooldowns {
		id, ok := component.ParseAbility(name)
		if !ok {
			return nil, fmt.Errorf("unknown ability cooldown %q", name)
		}
		t.Cooldowns[id] = cd
	}
	return t, nil
}
