package component

import (
	"errors"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key a component is stored under. Two kinds of
// the same Go type are distinct stores.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level registration of a component type.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{
		kind: NewComponentKind[T](),
		name: reflect.TypeFor[T]().Name(),
	}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

// Name is the Go type name, used in log fields.
func (h ComponentHandle[T]) Name() string {
	return h.name
}
