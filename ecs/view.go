package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View gives typed access to a combination of components.
// The type T should be a struct with embedded or named pointer fields, one per component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
// A field of type Entity receives the id of the entity being visited.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	entityField int
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		storage:     storage,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
		entityField: -1,
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			v.entityField = int(field.Offset)
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	if len(v.requiredTypes()) == 0 {
		panic("View struct must declare at least one required component")
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		component := v.storage.table(componentType).Get(e)
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// the interface holds a *Component; copy out its data word
		componentPtr := (*iface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	if v.entityField >= 0 {
		*(*Entity)(unsafe.Add(structPtr, v.entityField)) = e
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Types returns the required component types of the view, its query shape.
func (v *View[T]) Types() []reflect.Type {
	return v.requiredTypes()
}

// WorkingSet returns the entities matching the view's required components.
func (v *View[T]) WorkingSet() EntitySet {
	return Select(v.storage, v.requiredTypes()...)
}

// Iter returns an iterator over all entities that have all the required components for this view.
// Optional components are set to nil if not present. Iteration order is not defined.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		for e := range v.WorkingSet().All() {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components extracted from the view struct.
// Nil optional fields are skipped; a nil required field panics.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		component := reflect.NewAt(componentType, componentPtr).Elem().Interface()
		components = append(components, component)
	}

	return v.storage.Spawn(components...)
}

// requiredTypes returns a slice of only the required (non-optional) component types
func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}

// Query is a View meant to be declared as a System field. The Dispatcher binds
// it to the World's storage when the system list is built.
type Query[T any] struct {
	view *View[T]
}

// NewQuery creates a Query bound to the storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	return &Query[T]{view: NewView[T](storage)}
}

// Init binds the Query to a storage.
// Called by the Dispatcher for every Query field of a system.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
}

func (q *Query[T]) mustView() *View[T] {
	if q.view == nil {
		panic("Query used before Init()")
	}
	return q.view
}

// Types returns the query shape.
func (q *Query[T]) Types() []reflect.Type {
	return q.mustView().Types()
}

// WorkingSet selects the matching entities now.
func (q *Query[T]) WorkingSet() EntitySet {
	return q.mustView().WorkingSet()
}

// Get returns the populated struct for one entity, or nil.
func (q *Query[T]) Get(e Entity) *T {
	return q.mustView().Get(e)
}

// Iter selects the matching entities and yields them with their components.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return q.mustView().Iter()
}

// Values yields the populated structs only.
func (q *Query[T]) Values() iter.Seq[T] {
	return q.mustView().Values()
}

// iface mirrors the runtime layout of a non-empty eface: type word then data word.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}
