package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry declares the set of component types a Storage can hold.
// Each Storage snapshots the registry when it is created, so the type list of a
// storage is fixed for its whole lifetime.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentTable
	names     map[string]reflect.Type
	order     []reflect.Type
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentTable),
		names:     make(map[string]reflect.Type),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before a Storage using it is created.
// Components must be value types: pointers, maps, channels and functions panic.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}

	if _, exists := r.factories[t]; exists {
		return
	}

	r.factories[t] = func() iComponentTable {
		return newComponentTable[T](t)
	}
	r.order = append(r.order, t)
	r.names[t.String()] = t
	if t.Name() != "" {
		r.names[t.Name()] = t
	}
}

// Lookup resolves a component type by its short name ("Position") or its
// qualified name ("game.Position").
func (r *ComponentRegistry) Lookup(name string) (reflect.Type, bool) {
	t, ok := r.names[name]
	return t, ok
}

// Types returns the registered component types in registration order.
func (r *ComponentRegistry) Types() []reflect.Type {
	out := make([]reflect.Type, len(r.order))
	copy(out, r.order)
	return out
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentTable {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

// componentTable maps entities to component values of a single type `T`.
// Values live in fixed-size blocks that are allocated once and never moved,
// so pointers handed out by lookup stay valid for the table's lifetime.
type componentTable[T any] struct {
	typ    reflect.Type
	blocks []*[genericBlockSize]T
	index  *intmap.Map[Entity, int]
	owners []Entity
}

func newComponentTable[T any](t reflect.Type) *componentTable[T] {
	return &componentTable[T]{
		typ:   t,
		index: intmap.New[Entity, int](genericBlockSize),
	}
}

func (ct *componentTable[T]) slot(index int) *T {
	return &ct.blocks[index/genericBlockSize][index%genericBlockSize]
}

// put inserts or overwrites the value for e and returns a pointer to the stored copy.
func (ct *componentTable[T]) put(e Entity, value T) *T {
	if index, ok := ct.index.Get(e); ok {
		ptr := ct.slot(index)
		*ptr = value
		return ptr
	}

	index := len(ct.owners)
	if index/genericBlockSize >= len(ct.blocks) {
		ct.blocks = append(ct.blocks, new([genericBlockSize]T))
	}

	ct.owners = append(ct.owners, e)
	ct.index.Put(e, index)

	ptr := ct.slot(index)
	*ptr = value
	return ptr
}

// lookup returns a pointer to the component of e, or nil if e has none.
func (ct *componentTable[T]) lookup(e Entity) *T {
	index, ok := ct.index.Get(e)
	if !ok {
		return nil
	}
	return ct.slot(index)
}

func (ct *componentTable[T]) Type() reflect.Type {
	return ct.typ
}

// Set stores a component given either as T or *T. It reports false if the item has another type.
func (ct *componentTable[T]) Set(e Entity, item any) bool {
	switch v := item.(type) {
	case T:
		ct.put(e, v)
	case *T:
		if v == nil {
			return false
		}
		ct.put(e, *v)
	default:
		return false
	}
	return true
}

// Get returns a *T for the entity's component or nil.
func (ct *componentTable[T]) Get(e Entity) any {
	ptr := ct.lookup(e)
	if ptr == nil {
		return nil
	}
	return ptr
}

func (ct *componentTable[T]) Has(e Entity) bool {
	return ct.index.Has(e)
}

func (ct *componentTable[T]) Len() int {
	return len(ct.owners)
}

// Keys yields the entities holding a component in this table, in insertion order.
func (ct *componentTable[T]) Keys() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for _, e := range ct.owners {
			if !yield(e) {
				return
			}
		}
	}
}
