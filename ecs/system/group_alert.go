package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// GroupAlertSystem wakes every member of an alert group once any member sees
// the player or gets hit.
type GroupAlertSystem struct{}

func NewGroupAlertSystem() *GroupAlertSystem {
	return &GroupAlertSystem{}
}

func (s *GroupAlertSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, hasPlayer := findPlayer(w)
	target, _ := position(w, player)

	alerted := make(map[string]bool)
	ecs.ForEach(w, component.AlertGroupComponent.Kind(), func(e ecs.Entity, g *component.AlertGroup) {
		if g.Alerted {
			alerted[g.Name] = true
			return
		}
		if !hasPlayer || !living(w, e) {
			return
		}
		self, ok := position(w, e)
		if !ok {
			return
		}
		detect := g.Range
		if cfg, ok := ecs.Get(w, e, component.AIConfigComponent.Kind()); ok && cfg.DetectionRange > detect {
			detect = cfg.DetectionRange
		}
		if self.Distance(target) <= detect {
			alerted[g.Name] = true
		}
	})
	if len(alerted) == 0 {
		return
	}

	ecs.ForEach(w, component.AlertGroupComponent.Kind(), func(e ecs.Entity, g *component.AlertGroup) {
		if !alerted[g.Name] {
			return
		}
		g.Alerted = true
		if state, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
			state.Alerted = true
		}
	})
}

// alertOnDamage makes a hit actor hunt the player and flags its group.
func alertOnDamage(w *ecs.World, e ecs.Entity) {
	if state, ok := ecs.Get(w, e, component.AIStateComponent.Kind()); ok {
		state.Alerted = true
	}
	if g, ok := ecs.Get(w, e, component.AlertGroupComponent.Kind()); ok {
		g.Alerted = true
	}
}
