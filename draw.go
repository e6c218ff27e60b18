package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	zoneColor  = color.NRGBA{R: 0x80, G: 0x20, B: 0xa0, A: 0x60}
	burstColor = color.NRGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0x90}
)

func drawWorld(screen *ebiten.Image, w *ecs.World, cam camera, blink bool) {
	ecs.ForEach(w, component.WallComponent.Kind(), func(_ ecs.Entity, wall *component.Wall) {
		x, y := cam.toScreen(wall.Box.L, wall.Box.B)
		s := float32(cam.scale)
		c := colornames.Slategray
		if !wall.BlocksProjectiles {
			c = colornames.Darkslategray
		}
		vector.DrawFilledRect(screen, x, y, float32(wall.Box.R-wall.Box.L)*s, float32(wall.Box.T-wall.Box.B)*s, c, false)
	})

	ecs.ForEach2(w, component.HazardZoneComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, z *component.HazardZone, t *component.Transform) {
		c := zoneColor
		if z.Elapsed < z.Def.FadeIn {
			c.A /= 3
		}
		circle(screen, cam, t.X, t.Y, z.Def.Radius, c)
	})
	ecs.ForEach2(w, component.GroundBurstComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.GroundBurst, t *component.Transform) {
		if b.Exploded {
			circle(screen, cam, t.X, t.Y, b.Def.Radius, burstColor)
			return
		}
		ring(screen, cam, t.X, t.Y, b.Def.Radius*math.Min(1, b.Elapsed/math.Max(b.Def.Delay, 1e-6)), burstColor)
		ring(screen, cam, t.X, t.Y, b.Def.Radius, burstColor)
	})

	ecs.ForEach2(w, component.ExitGateComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.ExitGate, t *component.Transform) {
		if g.Open {
			circle(screen, cam, t.X, t.Y, g.Radius, colornames.Mediumseagreen)
			return
		}
		ring(screen, cam, t.X, t.Y, g.Radius, colornames.Darkred)
	})
	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Pickup, t *component.Transform) {
		c := colornames.Gold
		if p.Heal > 0 {
			c = colornames.Crimson
		}
		circle(screen, cam, t.X, t.Y, math.Max(p.Radius*0.6, 0.2), c)
	})

	ecs.ForEach2(w, component.TurretComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tur *component.Turret, t *component.Transform) {
		c := appearanceColor(w, e, colornames.Sienna)
		if !tur.Active {
			c = colornames.Dimgray
		}
		x, y := cam.toScreen(t.X-0.4, t.Y-0.4)
		vector.DrawFilledRect(screen, x, y, float32(0.8*cam.scale), float32(0.8*cam.scale), c, false)
	})

	ecs.ForEach3(w, component.HealthComponent.Kind(), component.TransformComponent.Kind(), component.HurtboxComponent.Kind(), func(e ecs.Entity, h *component.Health, t *component.Transform, hb *component.Hurtbox) {
		drawActor(screen, w, cam, e, h, t, hb, blink)
	})

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		c := colornames.Orangered
		if p.Faction == component.FactionEnemy {
			c = colornames.Wheat
		}
		circle(screen, cam, t.X, t.Y, math.Max(p.Def.Radius, 0.1), c)
		x0, y0 := cam.toScreen(t.X, t.Y)
		x1, y1 := cam.toScreen(t.X-p.DirX*0.5, t.Y-p.DirY*0.5)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, c, true)
	})

	ecs.ForEach2(w, component.HitboxComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, hb *component.Hitbox, t *component.Transform) {
		ring(screen, cam, t.X, t.Y, hb.Radius, colornames.Red)
	})
}

func drawActor(screen *ebiten.Image, w *ecs.World, cam camera, e ecs.Entity, h *component.Health, t *component.Transform, hb *component.Hurtbox, blink bool) {
	c := appearanceColor(w, e, colornames.White)
	switch {
	case ecs.Has(w, e, component.DeadComponent.Kind()):
		c = colornames.Dimgray
	case ecs.Has(w, e, component.InvulnerableComponent.Kind()) && blink:
		c = colornames.White
	case ecs.Has(w, e, component.StaggerComponent.Kind()):
		c = colornames.Lightpink
	}
	circle(screen, cam, t.X, t.Y, hb.Radius, c)

	if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok && pc.Defending() {
		ring(screen, cam, t.X, t.Y, hb.Radius+0.15, colornames.Deepskyblue)
	}

	if h.Max <= 0 || h.Current <= 0 {
		return
	}
	width := float32(hb.Radius * 2 * cam.scale)
	x, y := cam.toScreen(t.X-hb.Radius, t.Y-hb.Radius-0.3)
	vector.DrawFilledRect(screen, x, y, width, 3, colornames.Black, false)
	vector.DrawFilledRect(screen, x, y, width*float32(h.Current)/float32(h.Max), 3, colornames.Limegreen, false)
}

func appearanceColor(w *ecs.World, e ecs.Entity, fallback color.Color) color.Color {
	if a, ok := ecs.Get(w, e, component.AppearanceComponent.Kind()); ok && a.Color != nil {
		return a.Color
	}
	return fallback
}

func circle(screen *ebiten.Image, cam camera, x, y, r float64, c color.Color) {
	sx, sy := cam.toScreen(x, y)
	vector.DrawFilledCircle(screen, sx, sy, float32(r*cam.scale), c, true)
}

func ring(screen *ebiten.Image, cam camera, x, y, r float64, c color.Color) {
	sx, sy := cam.toScreen(x, y)
	vector.StrokeCircle(screen, sx, sy, float32(r*cam.scale), 1.5, c, true)
}
