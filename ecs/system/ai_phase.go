package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// EnterPhase2 applies the boss's second phase once. It scales movement and
// charge speed, swaps the attack set, makes the primary attack ready now and
// delays the others by their initial delay. An attack already running keeps
// its own copy of the old definition. Later calls return false.
func EnterPhase2(w *ecs.World, e ecs.Entity, log *zap.Logger) bool {
	boss, ok := ecs.Get(w, e, component.BossComponent.Kind())
	if !ok || !boss.InFirstPhase() || !living(w, e) {
		return false
	}
	now := w.Now()
	boss.Phase = 2
	boss.EnteredAt = now

	next := boss.Next
	if cfg, ok := ecs.Get(w, e, component.AIConfigComponent.Kind()); ok && next.SpeedMultiplier > 0 {
		if cfg.SpeedMultiplier <= 0 {
			cfg.SpeedMultiplier = 1
		}
		cfg.SpeedMultiplier *= next.SpeedMultiplier
	}

	if len(next.Attacks) > 0 {
		attacks := make([]component.AttackDefinition, len(next.Attacks))
		copy(attacks, next.Attacks)
		if next.ChargeMultiplier > 0 {
			for i := range attacks {
				attacks[i].ChargeSpeed *= next.ChargeMultiplier
			}
		}
		if set, ok := ecs.Get(w, e, component.AttackSetComponent.Kind()); ok {
			set.Attacks = attacks
		} else {
			_ = ecs.Add(w, e, component.AttackSetComponent.Kind(), &component.AttackSet{Attacks: attacks})
		}

		ledger := Ledger(w, e)
		for _, atk := range attacks {
			ledger.Register(atk.Name, atk.Cooldown, 0)
			if atk.Primary {
				ledger.ForceReady(atk.Name, now)
				continue
			}
			ledger.Reschedule(atk.Name, now+atk.InitialDelay)
		}
	}

	w.Events().Push(ecs.Event{
		Kind:   ecs.EventPhaseEntered,
		Time:   now,
		Entity: e,
		Phase:  2,
	})
	orNop(log).Info("boss entered phase", zap.Stringer("boss", e), zap.Int("phase", 2))
	return true
}
