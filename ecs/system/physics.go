package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const (
	collisionTypeActor cp.CollisionType = iota + 1
	collisionTypeSolid
)

// PhysicsSystem owns the Chipmunk space. Actors are dynamic circles driven by
// velocity; walls are static boxes. The arena is top-down so there is no
// gravity.
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
}

type bodyInfo struct {
	body   *cp.Body
	shapes []*cp.Shape
	static bool
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	ps.Sync(w)
	if dt := w.DeltaTime(); dt > 0 {
		ps.space.Step(dt)
	}
	ps.syncTransforms(w)
}

// Sync creates bodies for new entities and drops those of destroyed ones. The
// encounter calls it right after spawning so controllers can steer on the
// first tick.
func (ps *PhysicsSystem) Sync(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
	}
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if info := ps.entities[e]; info != nil {
			if bodyComp.Body == nil {
				bodyComp.Body = info.body
				bodyComp.Shape = info.shapes[0]
			}
			return
		}
		info := ps.createBodyInfo(t, bodyComp)
		if info == nil {
			return
		}
		ps.entities[e] = info
		bodyComp.Body = info.body
		bodyComp.Shape = info.shapes[0]
	})

	ecs.ForEach(w, component.WallComponent.Kind(), func(e ecs.Entity, wall *component.Wall) {
		if _, ok := ps.entities[e]; ok {
			return
		}
		shape := cp.NewBox2(ps.space.StaticBody, wall.Box, 0)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.entities[e] = &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	})
}

func (ps *PhysicsSystem) createBodyInfo(t *component.Transform, bodyComp *component.PhysicsBody) *bodyInfo {
	radius := bodyComp.Radius
	if radius <= 0 {
		radius = 0.5
	}
	center := cp.Vector{X: t.X, Y: t.Y}

	if bodyComp.Static {
		shape := cp.NewCircle(ps.space.StaticBody, radius, center)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shapes: []*cp.Shape{shape}, static: true}
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	// infinite moment keeps top-down actors from spinning on contact
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(center)

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeActor)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shapes: []*cp.Shape{shape}}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, t *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Static {
			return
		}
		pos := bodyComp.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.IsAlive(w, e) && (ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) || ecs.Has(w, e, component.WallComponent.Kind())) {
			continue
		}
		for _, shape := range info.shapes {
			if shape != nil {
				ps.space.RemoveShape(shape)
			}
		}
		if info.body != nil && !info.static {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}
