package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const defaultPickupRadius = 0.5

// PickupSystem hands touched pickups to the player: heals are capped at max
// health and ability unlocks are permanent.
type PickupSystem struct {
	log *zap.Logger
}

func NewPickupSystem(log *zap.Logger) *PickupSystem {
	return &PickupSystem{log: orNop(log)}
}

func (s *PickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, ok := findPlayer(w)
	if !ok {
		return
	}
	target, ok := position(w, player)
	if !ok {
		return
	}
	reach := hurtRadius(w, player)

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
		radius := p.Radius
		if radius <= 0 {
			radius = defaultPickupRadius
		}
		if target.Distance(cp.Vector{X: t.X, Y: t.Y}) > radius+reach {
			return
		}
		Collect(w, player, p)
		s.log.Info("pickup collected", zap.String("pickup", p.Name))
		ecs.DestroyEntity(w, e)
	})
}

// Collect applies a pickup to the player.
func Collect(w *ecs.World, player ecs.Entity, p *component.Pickup) {
	if p.Heal > 0 {
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			h.Current += min(p.Heal, h.Max-h.Current)
		}
	}
	for _, id := range p.Abilities {
		Unlock(w, player, id)
	}
}
