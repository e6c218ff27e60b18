package entity

import (
	"fmt"

	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func attackDefinitions(specs []prefabs.AttackSpec) []component.AttackDefinition {
	out := make([]component.AttackDefinition, 0, len(specs))
	for _, s := range specs {
		out = append(out, attackDefinition(s))
	}
	return out
}

// attackDefinition keeps unknown kinds as authored; the controller skips them
// with a warning.
func attackDefinition(s prefabs.AttackSpec) component.AttackDefinition {
	def := component.AttackDefinition{
		Name:                  s.Name,
		Kind:                  component.AttackKind(s.Kind),
		Priority:              s.Priority,
		Primary:               s.Primary,
		Cooldown:              s.Cooldown,
		InitialDelay:          s.InitialDelay,
		Range:                 s.Range,
		Windup:                s.Windup,
		Active:                s.Active,
		Recovery:              s.Recovery,
		Damage:                s.Damage,
		HitboxRadius:          s.HitboxRadius,
		Knockback:             s.Knockback,
		SubHits:               s.SubHits,
		SubHitInterval:        s.SubHitInterval,
		HitDuration:           s.HitDuration,
		Pattern:               pattern(s.Pattern),
		ChargeSpeed:           s.ChargeSpeed,
		FinalChargeMultiplier: s.FinalChargeMultiplier,
		RetreatDistance:       s.RetreatDistance,
		RetreatSpeed:          s.RetreatSpeed,
	}
	if s.Projectile != nil {
		def.Projectile = projectileDef(*s.Projectile)
	}
	if s.Burst != nil {
		def.Burst = component.BurstDef{
			Delay:  s.Burst.Delay,
			Radius: s.Burst.Radius,
			Damage: s.Burst.Damage,
			Jitter: s.Burst.Jitter,
		}
	}
	if s.Zone != nil {
		def.Zone = component.ZoneDef{
			SpawnInterval: s.Zone.SpawnInterval,
			Radius:        s.Zone.Radius,
			FadeIn:        s.Zone.FadeIn,
			Duration:      s.Zone.Duration,
			TickInterval:  s.Zone.TickInterval,
			Damage:        s.Zone.Damage,
		}
	}
	return def
}

func pattern(s prefabs.PatternSpec) component.Pattern {
	kind := component.PatternKind(s.Kind)
	if kind == "" {
		kind = component.PatternSingle
	}
	return component.Pattern{Kind: kind, Count: s.Count, SpreadDeg: s.Spread}
}

func projectileDef(s prefabs.ProjectileSpec) component.ProjectileDef {
	return component.ProjectileDef{
		Speed:          s.Speed,
		Damage:         s.Damage,
		Lifetime:       s.Lifetime,
		Radius:         s.Radius,
		DestroyOnHit:   s.DestroyOnHit,
		DestroyOnWall:  s.DestroyOnWall,
		Knockback:      s.Knockback,
		KnockbackAlong: s.KnockbackAlong,
		Stun:           s.Stun,
	}
}

func pickup(s prefabs.PickupSpec) (component.Pickup, error) {
	p := component.Pickup{Name: s.Name, Radius: s.Radius, Heal: s.Heal}
	for _, name := range s.Abilities {
		id, ok := component.ParseAbility(name)
		if !ok {
			return component.Pickup{}, fmt.Errorf("pickup %s: unknown ability %q", s.Name, name)
		}
		p.Abilities = append(p.Abilities, id)
	}
	return p, nil
}

func dropTable(specs []prefabs.DropSpec) (*component.DropTable, error) {
	table := &component.DropTable{}
	for _, d := range specs {
		p, err := pickup(d.Pickup)
		if err != nil {
			return nil, err
		}
		table.Entries = append(table.Entries, component.DropEntry{Chance: d.Chance, Pickup: p})
	}
	return table, nil
}

func appearance(label string, c *prefabs.YAMLColor) *component.Appearance {
	a := &component.Appearance{Label: label}
	if c != nil {
		a.Color = c.Color
	}
	return a
}
