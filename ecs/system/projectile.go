package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const defaultProjectileRadius = 0.2

// SpawnProjectiles fires one volley of def from origin along the pattern
// around dir. Each projectile owns its own hit registry activation.
func SpawnProjectiles(w *ecs.World, owner ecs.Entity, origin, dir cp.Vector, def component.ProjectileDef, pattern component.Pattern) []ecs.Entity {
	if w == nil {
		return nil
	}
	reg := hitRegistry(w)
	faction := factionOf(w, owner)
	dirs := PatternDirections(dir, pattern)
	out := make([]ecs.Entity, 0, len(dirs))
	for _, d := range dirs {
		e := ecs.CreateEntity(w)
		proj := &component.Projectile{
			Owner:     owner.ID(),
			Faction:   faction,
			DirX:      d.X,
			DirY:      d.Y,
			Speed:     def.Speed,
			Remaining: def.Lifetime,
			Def:       def,
		}
		if reg != nil {
			proj.Activation = reg.Begin()
		}
		if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), proj); err != nil {
			ecs.DestroyEntity(w, e)
			continue
		}
		_ = ecs.Add(w, e, component.ProjectileTagComponent.Kind(), &component.ProjectileTag{})
		_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: origin.X, Y: origin.Y, FacingLeft: d.X < 0})
		out = append(out, e)
	}
	return out
}

// ProjectileSystem moves projectiles in straight lines and resolves their
// wall and character hits.
type ProjectileSystem struct {
	damage *DamageResolver
	log    *zap.Logger
}

func NewProjectileSystem(damage *DamageResolver, log *zap.Logger) *ProjectileSystem {
	return &ProjectileSystem{damage: damage, log: orNop(log)}
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()
	reg := hitRegistry(w)

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		t.X += p.DirX * p.Speed * dt
		t.Y += p.DirY * p.Speed * dt
		p.Remaining -= dt
		if p.Remaining <= 0 {
			s.destroy(w, e, p, reg)
			return
		}

		pos := cp.Vector{X: t.X, Y: t.Y}
		if p.Def.DestroyOnWall && hitsWall(w, pos) {
			s.destroy(w, e, p, reg)
			return
		}

		radius := p.Def.Radius
		if radius <= 0 {
			radius = defaultProjectileRadius
		}
		for _, target := range hurtTargets(w, p.Faction) {
			if target.ID() == p.Owner {
				continue
			}
			tp, ok := position(w, target)
			if !ok || !overlaps(pos, radius, tp, hurtRadius(w, target)) {
				continue
			}
			if reg == nil || !reg.TryRegisterHit(p.Activation, target.ID()) {
				continue
			}
			outcome := s.damage.ApplyDamage(w, target, p.HitDamage(), ecs.Entity(p.Owner))
			if outcome != component.DamageIgnored {
				s.afterHit(w, target, p, pos)
			}
			if p.Def.DestroyOnHit {
				s.destroy(w, e, p, reg)
				return
			}
		}
	})
}

func (s *ProjectileSystem) afterHit(w *ecs.World, target ecs.Entity, p *component.Projectile, at cp.Vector) {
	if p.Def.Knockback > 0 && living(w, target) {
		req := &component.DamageKnockback{SourceX: at.X, SourceY: at.Y, Impulse: p.Def.Knockback}
		if p.Def.KnockbackAlong {
			req.Directional = true
			req.DirX = p.DirX
			req.DirY = p.DirY
		}
		requestKnockback(w, target, req)
	}
	if p.Def.Stun > 0 {
		ApplyStun(w, target, p.Def.Stun)
	}
}

func (s *ProjectileSystem) destroy(w *ecs.World, e ecs.Entity, p *component.Projectile, reg *component.HitRegistry) {
	if reg != nil {
		reg.End(p.Activation)
	}
	ecs.DestroyEntity(w, e)
}

func hitsWall(w *ecs.World, pos cp.Vector) bool {
	hit := false
	ecs.ForEach(w, component.WallComponent.Kind(), func(_ ecs.Entity, wall *component.Wall) {
		if hit || !wall.BlocksProjectiles {
			return
		}
		hit = wall.Box.ContainsVect(pos)
	})
	return hit
}
