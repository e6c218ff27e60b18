package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// Ledger returns the cooldown ledger of e, creating an empty one on first use.
func Ledger(w *ecs.World, e ecs.Entity) *component.CooldownLedger {
	if l, ok := ecs.Get(w, e, component.CooldownLedgerComponent.Kind()); ok {
		return l
	}
	l := component.NewCooldownLedger()
	if err := ecs.Add(w, e, component.CooldownLedgerComponent.Kind(), l); err != nil {
		return nil
	}
	return l
}

// IsReady checks action of e against the world clock.
func IsReady(w *ecs.World, e ecs.Entity, action string) bool {
	return Ledger(w, e).IsReady(action, w.Now())
}

// MarkFired stamps action of e with the world clock.
func MarkFired(w *ecs.World, e ecs.Entity, action string) {
	Ledger(w, e).MarkFired(action, w.Now())
}

// TryFire marks action fired and reports true when it was ready.
func TryFire(w *ecs.World, e ecs.Entity, action string) bool {
	if !IsReady(w, e, action) {
		return false
	}
	MarkFired(w, e, action)
	return true
}

// RegisterAttacks records the cooldown of every attack. An attack with an
// initial delay first becomes ready that long after now.
func RegisterAttacks(w *ecs.World, e ecs.Entity, attacks []component.AttackDefinition) {
	ledger := Ledger(w, e)
	for _, a := range attacks {
		first := 0.0
		if a.InitialDelay > 0 {
			first = w.Now() + a.InitialDelay
		}
		ledger.Register(a.Name, a.Cooldown, first)
	}
}
