package encounter

import (
	"math"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
)

// Autopilot drives the player without a human: it closes on the nearest
// living enemy, swings and casts whatever is ready, and walks to the gate once
// the encounter is cleared. The headless runner and soak tests use it.
type Autopilot struct {
	// Reach is the distance at which the autopilot stops and swings.
	Reach float64
}

func (a Autopilot) Input(enc *Encounter) component.Input {
	w := enc.World()
	p := enc.Player()
	pt, ok := ecs.Get(w, p, component.TransformComponent.Kind())
	if !ok || ecs.Has(w, p, component.DeadComponent.Kind()) {
		return component.Input{}
	}
	reach := a.Reach
	if reach <= 0 {
		reach = 1.5
	}

	if enc.Cleared() {
		tx, ty, found := nearestGate(w, pt)
		if !found {
			return component.Input{}
		}
		mx, my, _ := toward(pt.X, pt.Y, tx, ty)
		return component.Input{MoveX: mx, MoveY: my, AimX: mx, AimY: my, Interact: true}
	}

	tx, ty, found := nearestEnemy(w, pt)
	if !found {
		return component.Input{}
	}
	ax, ay, dist := toward(pt.X, pt.Y, tx, ty)
	in := component.Input{AimX: ax, AimY: ay, Attack: dist <= reach}
	if dist > reach {
		in.MoveX, in.MoveY = ax, ay
	}

	abilities, _ := ecs.Get(w, p, component.AbilitiesComponent.Kind())
	for slot, id := range component.AbilityOrder {
		if id == component.AbilityDefense || !abilities.Unlocked(id) {
			continue
		}
		if !system.IsReady(w, p, string(id)) {
			continue
		}
		if id == component.AbilityDash && dist <= reach*2 {
			continue
		}
		in.Ability[slot] = true
		break
	}
	return in
}

func nearestEnemy(w *ecs.World, from *component.Transform) (float64, float64, bool) {
	best := math.Inf(1)
	var bx, by float64
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, t *component.Transform) {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			return
		}
		if d := math.Hypot(t.X-from.X, t.Y-from.Y); d < best {
			best, bx, by = d, t.X, t.Y
		}
	})
	return bx, by, !math.IsInf(best, 1)
}

func nearestGate(w *ecs.World, from *component.Transform) (float64, float64, bool) {
	best := math.Inf(1)
	var bx, by float64
	ecs.ForEach2(w, component.ExitGateComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.ExitGate, t *component.Transform) {
		if !g.Open {
			return
		}
		if d := math.Hypot(t.X-from.X, t.Y-from.Y); d < best {
			best, bx, by = d, t.X, t.Y
		}
	})
	return bx, by, !math.IsInf(best, 1)
}

func toward(x, y, tx, ty float64) (float64, float64, float64) {
	dx, dy := tx-x, ty-y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0, 0
	}
	return dx / d, dy / d, d
}
