package ecs

import (
	"iter"
	"reflect"
	"slices"
	"sort"

	"github.com/kamstrup/intmap"
)

//go:generate go run ../cmd/ecsgen -out select_generated.go -max 6

// EntitySet is an unordered set of entities without duplicates.
// The zero value is an empty set ready to use.
type EntitySet struct {
	set *intmap.Set[Entity]
}

// NewEntitySet creates an empty set sized for capacity entities.
func NewEntitySet(capacity int) EntitySet {
	return EntitySet{set: intmap.NewSet[Entity](capacity)}
}

// EntitySetOf builds a set holding the given entities.
func EntitySetOf(entities ...Entity) EntitySet {
	s := NewEntitySet(len(entities))
	for _, e := range entities {
		s.Add(e)
	}
	return s
}

// Add inserts e into the set.
func (s *EntitySet) Add(e Entity) {
	if s.set == nil {
		s.set = intmap.NewSet[Entity](8)
	}
	s.set.Add(e)
}

// Clear removes every entity but keeps the allocated buffers.
func (s *EntitySet) Clear() {
	if s.set != nil {
		s.set.Clear()
	}
}

// Has reports whether e is in the set.
func (s EntitySet) Has(e Entity) bool {
	return s.set != nil && s.set.Has(e)
}

// Len returns the number of entities in the set.
func (s EntitySet) Len() int {
	if s.set == nil {
		return 0
	}
	return s.set.Len()
}

// All iterates over the set. The iteration order is not defined.
func (s EntitySet) All() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if s.set != nil {
			s.set.ForEach(yield)
		}
	}
}

// Sorted returns the members in ascending order.
func (s EntitySet) Sorted() []Entity {
	out := make([]Entity, 0, s.Len())
	for e := range s.All() {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// Equal reports whether both sets hold the same entities.
func (s EntitySet) Equal(other EntitySet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for e := range s.All() {
		if !other.Has(e) {
			return false
		}
	}
	return true
}

// Intersect returns the entities present in both sets.
func (s EntitySet) Intersect(other EntitySet) EntitySet {
	small, large := s, other
	if large.Len() < small.Len() {
		small, large = large, small
	}

	result := NewEntitySet(small.Len())
	for e := range small.All() {
		if large.Has(e) {
			result.Add(e)
		}
	}
	return result
}

// Union returns the entities present in either set.
func (s EntitySet) Union(other EntitySet) EntitySet {
	result := NewEntitySet(s.Len() + other.Len())
	for e := range s.All() {
		result.Add(e)
	}
	for e := range other.All() {
		result.Add(e)
	}
	return result
}

// Clone returns a copy of the set.
func (s EntitySet) Clone() EntitySet {
	result := NewEntitySet(s.Len())
	for e := range s.All() {
		result.Add(e)
	}
	return result
}

// Difference returns the entities of s that are not in other.
func (s EntitySet) Difference(other EntitySet) EntitySet {
	result := NewEntitySet(s.Len())
	for e := range s.All() {
		if !other.Has(e) {
			result.Add(e)
		}
	}
	return result
}

// Select returns exactly the entities that have a component of every given type.
// Tables are probed smallest first; the result does not depend on the order of types.
// Select panics when called without types or with an unregistered type.
func Select(s *Storage, types ...reflect.Type) EntitySet {
	if len(types) == 0 {
		panic("select requires at least one component type")
	}

	tables := make([]iComponentTable, len(types))
	for i, typ := range types {
		tables[i] = s.table(typ)
	}
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].Len() < tables[j].Len()
	})

	smallest, rest := tables[0], tables[1:]
	result := NewEntitySet(smallest.Len())

candidates:
	for e := range smallest.Keys() {
		for _, table := range rest {
			if !table.Has(e) {
				continue candidates
			}
		}
		result.Add(e)
	}

	return result
}
