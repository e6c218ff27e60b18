package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const turretAction = "volley"

// TurretSystem fires stationary traps at the player. A volley is fired one
// shot per BurstDelay; a trap linked to a boss shuts down when the boss dies.
type TurretSystem struct {
	log *zap.Logger
}

func NewTurretSystem(log *zap.Logger) *TurretSystem {
	return &TurretSystem{log: orNop(log)}
}

func (s *TurretSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	player, hasPlayer := findPlayer(w)
	target, _ := position(w, player)

	ecs.ForEach(w, component.TurretComponent.Kind(), func(e ecs.Entity, t *component.Turret) {
		if !t.Active {
			return
		}
		if t.LinkedBoss != 0 && !living(w, ecs.Entity(t.LinkedBoss)) {
			t.Active = false
			t.Pending = nil
			s.log.Info("trap deactivated", zap.Stringer("trap", e))
			return
		}
		self, ok := position(w, e)
		if !ok {
			return
		}

		if len(t.Pending) > 0 {
			if now+epsilon >= t.NextShotAt {
				s.shoot(w, e, t, self)
			}
			return
		}
		if !hasPlayer || self.Distance(target) > t.DetectionRange {
			return
		}
		if !TryFire(w, e, turretAction) {
			return
		}
		aim, _ := direction(self, target)
		t.Pending = t.Pending[:0]
		for _, d := range PatternDirections(aim, t.Pattern) {
			t.Pending = append(t.Pending, [2]float64{d.X, d.Y})
		}
		s.shoot(w, e, t, self)
	})
}

func (s *TurretSystem) shoot(w *ecs.World, e ecs.Entity, t *component.Turret, from cp.Vector) {
	d := t.Pending[0]
	t.Pending = t.Pending[1:]
	t.NextShotAt = w.Now() + t.BurstDelay
	SpawnProjectiles(w, e, from, cp.Vector{X: d[0], Y: d[1]}, t.Projectile, component.Pattern{Kind: component.PatternSingle})
}
