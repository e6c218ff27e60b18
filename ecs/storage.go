package ecs

import (
	"github.com/milk9111/arena/ecs/component"
)

// sparseSet stores one component type densely. sparse maps a slot id to its
// dense index plus one so the zero value means absent.
type sparseSet[T any] struct {
	sparse []int32
	dense  []Entity
	values []*T
}

func (s *sparseSet[T]) index(id entityID) (int, bool) {
	if int(id) >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id]
	if idx == 0 {
		return 0, false
	}
	return int(idx - 1), true
}

func (s *sparseSet[T]) has(id entityID) bool {
	_, ok := s.index(id)
	return ok
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	id := e.id()
	if idx, ok := s.index(id); ok {
		s.dense[idx] = e
		s.values[idx] = v
		return
	}
	for int(id) >= len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id] = int32(len(s.dense))
}

func (s *sparseSet[T]) get(id entityID) (*T, bool) {
	idx, ok := s.index(id)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) remove(id entityID) bool {
	idx, ok := s.index(id)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()] = int32(idx + 1)

	s.dense[last] = 0
	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id] = 0
	return true
}

// snapshot copies the dense entity list so callers may add or destroy while
// iterating.
func (s *sparseSet[T]) snapshot() []Entity {
	return append([]Entity(nil), s.dense...)
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if raw, ok := w.stores[kind.ID()]; ok {
		s, _ := raw.(*sparseSet[T])
		return s
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}

// Add attaches or replaces the component of the given kind on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e, value)
	return nil
}

// Get returns the component of the given kind on e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

// Has reports whether e carries a component of the given kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

// Remove detaches the component of the given kind. It returns false when e did
// not carry one.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return false
	}
	return s.remove(e.id())
}

// First returns the first entity carrying the given kind. Singletons such as
// the hit registry are looked up this way.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	s := storeFor(w, kind, false)
	if s == nil || len(s.dense) == 0 {
		return 0, false
	}
	return s.dense[0], true
}

// Count returns the number of entities carrying the given kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s := storeFor(w, kind, false)
	if s == nil {
		return 0
	}
	return len(s.dense)
}
