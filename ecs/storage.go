package ecs

import (
	"reflect"
	"sort"
)

// Storage is the component store of a World: one table per registered component type.
type Storage struct {
	tables   map[reflect.Type]iComponentTable
	types    []reflect.Type
	entities entityAllocator
}

// NewStorage creates a new component store holding one table for every type
// registered on the registry at this point.
func NewStorage(registry *ComponentRegistry) *Storage {
	s := &Storage{
		tables: make(map[reflect.Type]iComponentTable, len(registry.order)),
	}

	for _, typ := range registry.order {
		s.tables[typ] = registry.getFactory(typ)()
		s.types = append(s.types, typ)
	}

	return s
}

// CreateEntity returns a fresh, previously unused entity identifier.
func (s *Storage) CreateEntity() Entity {
	return s.entities.create()
}

// EntityCount returns the number of entity identifiers issued by this storage.
func (s *Storage) EntityCount() int {
	return s.entities.count()
}

// table returns the type-erased table for compType and panics if the type was
// never registered.
func (s *Storage) table(compType reflect.Type) iComponentTable {
	table, ok := s.tables[compType]
	if !ok {
		panic("component type " + compType.String() + " not registered")
	}
	return table
}

func tableFor[T any](s *Storage) *componentTable[T] {
	return s.table(reflect.TypeFor[T]()).(*componentTable[T])
}

// AddComponent inserts or overwrites the component of type T on the entity.
func AddComponent[T any](s *Storage, e Entity, value T) {
	tableFor[T](s).put(e, value)
}

// GetComponent returns a live pointer to the entity's component of type T.
// The second return value is false if the entity has no such component.
// Writes through the pointer are visible to every later reader.
func GetComponent[T any](s *Storage, e Entity) (*T, bool) {
	ptr := tableFor[T](s).lookup(e)
	return ptr, ptr != nil
}

// HasComponent reports whether the entity has a component of type T.
func HasComponent[T any](s *Storage, e Entity) bool {
	return tableFor[T](s).Has(e)
}

// Set stores a component whose type is only known at runtime. The component
// may be given as a value or as a pointer to a value.
func (s *Storage) Set(e Entity, component any) {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("cannot set a nil component")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	if !s.table(compType).Set(e, component) {
		panic("component of type " + compType.String() + " could not be stored")
	}
}

// Spawn creates a new entity and attaches all the given components to it.
func (s *Storage) Spawn(components ...any) Entity {
	e := s.CreateEntity()
	for _, component := range components {
		s.Set(e, component)
	}
	return e
}

// Get returns a pointer to the component of the given type, or nil.
func (s *Storage) Get(e Entity, compType reflect.Type) any {
	return s.table(compType).Get(e)
}

// Has reports whether the entity has a component of the given type.
func (s *Storage) Has(e Entity, compType reflect.Type) bool {
	return s.table(compType).Has(e)
}

// Len returns the number of components stored in the table of the given type.
func (s *Storage) Len(compType reflect.Type) int {
	return s.table(compType).Len()
}

// Types returns the component types this storage was created with.
func (s *Storage) Types() []reflect.Type {
	out := make([]reflect.Type, len(s.types))
	copy(out, s.types)
	return out
}

// TypesOf returns the types of all components attached to the entity, sorted by name.
func (s *Storage) TypesOf(e Entity) []reflect.Type {
	var types []reflect.Type
	for _, typ := range s.types {
		if s.tables[typ].Has(e) {
			types = append(types, typ)
		}
	}
	sort.Sort(byTypeName(types))
	return types
}

// Entities returns every entity that has at least one component.
func (s *Storage) Entities() EntitySet {
	result := NewEntitySet(0)
	for _, typ := range s.types {
		for e := range s.tables[typ].Keys() {
			result.Add(e)
		}
	}
	return result
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// ComponentReader is implemented by anything that can look up components by type.
type ComponentReader interface {
	Get(Entity, reflect.Type) any
}

// ReadComponent is a typed wrapper over ComponentReader.Get. It returns nil
// when the component is absent.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	component := reader.Get(e, reflect.TypeFor[T]())
	if component == nil {
		return nil
	}
	return component.(*T)
}
