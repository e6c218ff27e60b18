package ecs

import (
	"github.com/milk9111/arena/ecs/component"
)

// System updates a world once per tick.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the simulation clock and the
// pending event queue.
type World struct {
	gens   []generation
	alive  []bool
	free   []entityID
	count  int
	stores map[component.ComponentID]store

	events EventQueue

	now  float64
	dt   float64
	tick uint64
}

type store interface {
	has(id entityID) bool
	remove(id entityID) bool
}

// NewWorld creates an empty world. Slot 0 is reserved so the zero Entity is
// never alive.
func NewWorld() *World {
	return &World{
		gens:   make([]generation, 1, 64),
		alive:  make([]bool, 1, 64),
		stores: make(map[component.ComponentID]store),
	}
}

// CreateEntity allocates a new entity, reusing freed slots with a bumped
// generation.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	var id entityID
	if n := len(w.free); n > 0 {
		id = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		id = entityID(len(w.gens))
		w.gens = append(w.gens, 0)
		w.alive = append(w.alive, false)
	}
	w.alive[id] = true
	w.count++
	return makeEntity(id, w.gens[id])
}

// DestroyEntity removes every component of e and frees its slot. It returns
// false when e was not alive.
func DestroyEntity(w *World, e Entity) bool {
	if !IsAlive(w, e) {
		return false
	}
	id := e.id()
	for _, s := range w.stores {
		s.remove(id)
	}
	w.alive[id] = false
	w.gens[id]++
	w.free = append(w.free, id)
	w.count--
	return true
}

// IsAlive reports whether e refers to a live entity of this world.
func IsAlive(w *World, e Entity) bool {
	if w == nil || !e.Valid() {
		return false
	}
	id := e.id()
	if int(id) >= len(w.gens) {
		return false
	}
	return w.alive[id] && w.gens[id] == e.generation()
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.count)
	for id := 1; id < len(w.gens); id++ {
		if w.alive[id] {
			out = append(out, makeEntity(entityID(id), w.gens[id]))
		}
	}
	return out
}

// Events returns the queue that systems push combat events onto.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Now is the simulation time in seconds at the start of the current tick.
func (w *World) Now() float64 {
	if w == nil {
		return 0
	}
	return w.now
}

// DeltaTime is the fixed step of the current tick in seconds.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.dt
}

// Tick is the number of completed ticks.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// SetDeltaTime configures the step used by the next ticks.
func (w *World) SetDeltaTime(dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	w.dt = dt
}

// Advance moves the clock forward by one step. Call it after all systems of a
// tick ran.
func (w *World) Advance() {
	if w == nil {
		return
	}
	w.now += w.dt
	w.tick++
}
