package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	contactAction    = "contact"
	contactTolerance = 0.1
)

// ContactDamageSystem hurts the player when an enemy body touches it. A
// staggered or dead enemy does not hurt.
type ContactDamageSystem struct {
	damage *DamageResolver
}

func NewContactDamageSystem(damage *DamageResolver) *ContactDamageSystem {
	return &ContactDamageSystem{damage: damage}
}

func (s *ContactDamageSystem) Update(w *ecs.World) {
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
	targetRadius := hurtRadius(w, player)

	ecs.ForEach(w, component.ContactDamageComponent.Kind(), func(e ecs.Entity, cd *component.ContactDamage) {
		if !living(w, e) || staggered(w, e) || cd.Damage <= 0 {
			return
		}
		self, ok := position(w, e)
		if !ok {
			return
		}
		reach := hurtRadius(w, e) + targetRadius + contactTolerance
		if self.Distance(target) > reach {
			return
		}
		ledger := Ledger(w, e)
		ledger.Register(contactAction, cd.Interval, 0)
		if !ledger.IsReady(contactAction, w.Now()) {
			return
		}
		ledger.MarkFired(contactAction, w.Now())
		s.damage.ApplyDamage(w, player, cd.Damage, e)
	})
}
