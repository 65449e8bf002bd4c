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

// Kind is the untyped view of a ComponentKind, used by queries that mix
// component types.
type Kind interface {
	ID() ComponentID
	Name() string
}

// ComponentKind identifies the store for components of type T. The zero
// value is invalid; get one from NewComponent.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// Name is T's type name, for errors.
func (k ComponentKind[T]) Name() string {
	return reflect.TypeFor[T]().Name()
}

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

// NewComponent allocates a new kind. Call it once per component type, from a
// package-level var.
func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
