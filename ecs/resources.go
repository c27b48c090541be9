package ecs

import (
	"reflect"
	"sort"
)

// Resources is a fixed set of singleton values that are not attached to any
// entity, such as configuration or device handles. Values are retrieved by type.
type Resources struct {
	items map[reflect.Type]any
}

// NewResources creates the resource set. Each value is copied into the set and
// later retrieved through a pointer to that copy. Two values of the same type panic.
func NewResources(values ...any) *Resources {
	r := &Resources{
		items: make(map[reflect.Type]any, len(values)),
	}

	for _, value := range values {
		if value == nil {
			panic("cannot add nil resource")
		}
		t := reflect.TypeOf(value)
		if _, exists := r.items[t]; exists {
			panic("resource of type " + t.String() + " already exists")
		}

		ptr := reflect.New(t)
		ptr.Elem().Set(reflect.ValueOf(value))
		r.items[t] = ptr.Interface()
	}

	return r
}

// Len returns the number of resources.
func (r *Resources) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// TypeNames returns the resource type names, sorted.
func (r *Resources) TypeNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.items))
	for t := range r.items {
		names = append(names, t.String())
	}
	sort.Strings(names)
	return names
}

// GetResource returns a pointer to the resource of type T.
func GetResource[T any](r *Resources) (*T, bool) {
	if r == nil {
		return nil, false
	}
	item, ok := r.items[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	return item.(*T), true
}

// Resource provides access to a single resource from a System field.
// The Dispatcher binds it to the World's resources when the system list is built.
type Resource[T any] struct {
	value *T
}

// NewResource creates an accessor bound to the given resources.
func NewResource[T any](r *Resources) *Resource[T] {
	res := &Resource[T]{}
	res.Init(r)
	return res
}

// Init binds the accessor to a resource set.
// This is called automatically by the Dispatcher.
func (r *Resource[T]) Init(resources *Resources) {
	r.value, _ = GetResource[T](resources)
}

// Get returns a pointer to the resource, or nil if the World has no resource of type T.
func (r *Resource[T]) Get() *T {
	return r.value
}

// Exists returns true if the resource is present.
func (r *Resource[T]) Exists() bool {
	return r.value != nil
}
