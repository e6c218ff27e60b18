package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

// StatusSystem counts down stagger and invincibility windows.
type StatusSystem struct{}

func NewStatusSystem() *StatusSystem {
	return &StatusSystem{}
}

func (s *StatusSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.StaggerComponent.Kind(), func(e ecs.Entity, st *component.Stagger) {
		st.Remaining -= dt
		if st.Remaining <= epsilon {
			ecs.Remove(w, e, component.StaggerComponent.Kind())
		}
	})

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Remaining -= dt
		if inv.Remaining <= epsilon {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}

// staggered reports an active flinch overlay.
func staggered(w *ecs.World, e ecs.Entity) bool {
	st, ok := ecs.Get(w, e, component.StaggerComponent.Kind())
	return ok && st.Remaining > 0
}

// grantInvulnerable extends the invincibility window of e to at least d.
func grantInvulnerable(w *ecs.World, e ecs.Entity, d float64) {
	if d <= 0 {
		return
	}
	if inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind()); ok {
		if inv.Remaining < d {
			inv.Remaining = d
		}
		return
	}
	_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Remaining: d})
}
