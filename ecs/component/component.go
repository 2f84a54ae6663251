package component

import (
	"errors"
	"sync"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentID uint32

// Kind is the untyped view of a component kind, used by queries that mix
// several component types.
type Kind interface {
	ID() ComponentID
	Name() string
}

// ComponentKind identifies the store holding values of T. The zero value is
// invalid.
type ComponentKind[T any] struct {
	id   ComponentID
	name string
}

func (k ComponentKind[T]) ID() ComponentID { return k.id }
func (k ComponentKind[T]) Name() string    { return k.name }
func (k ComponentKind[T]) Valid() bool     { return k.id != 0 }

type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

var (
	registryMu sync.Mutex
	registry   []Kind
)

// NewComponent allocates the next kind id and records the kind under name.
func NewComponent[T any](name string) ComponentHandle[T] {
	registryMu.Lock()
	defer registryMu.Unlock()

	kind := ComponentKind[T]{id: ComponentID(len(registry) + 1), name: name}
	registry = append(registry, kind)
	return ComponentHandle[T]{kind: kind}
}

// Kinds lists every registered kind in registration order.
func Kinds() []Kind {
	registryMu.Lock()
	defer registryMu.Unlock()
	return append([]Kind(nil), registry...)
}
