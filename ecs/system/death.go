package system

import (
	"math/rand/v2"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// DeathSystem rolls the drop table of fresh corpses and removes them once
// their grace period is over. The player is never removed.
type DeathSystem struct {
	log *zap.Logger
	rng *rand.Rand
}

func NewDeathSystem(log *zap.Logger, rng *rand.Rand) *DeathSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &DeathSystem{log: orNop(log), rng: rng}
}

func (s *DeathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	ecs.ForEach(w, component.DeadComponent.Kind(), func(e ecs.Entity, d *component.Dead) {
		if !d.DropsSpawned {
			d.DropsSpawned = true
			s.drop(w, e)
			ecs.Remove(w, e, component.PhysicsBodyComponent.Kind())
		}
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			return
		}
		if now+epsilon >= d.RemoveAt {
			ecs.DestroyEntity(w, e)
		}
	})
}

func (s *DeathSystem) drop(w *ecs.World, e ecs.Entity) {
	table, ok := ecs.Get(w, e, component.DropTableComponent.Kind())
	if !ok {
		return
	}
	at, _ := position(w, e)
	for _, entry := range table.Entries {
		if s.rng.Float64() >= entry.Chance {
			continue
		}
		pickup := entry.Pickup
		pe := ecs.CreateEntity(w)
		if err := ecs.Add(w, pe, component.PickupComponent.Kind(), &pickup); err != nil {
			ecs.DestroyEntity(w, pe)
			continue
		}
		_ = ecs.Add(w, pe, component.TransformComponent.Kind(), &component.Transform{X: at.X, Y: at.Y})
		s.log.Debug("drop spawned", zap.Stringer("from", e), zap.String("pickup", pickup.Name))
	}
}
