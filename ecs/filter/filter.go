// Package filter builds predicates over the set of component types an entity
// holds and evaluates them against a Storage.
package filter

import (
	"reflect"

	"github.com/plus3/lxecs/ecs"
)

// ComponentFilter is a filter that filters entities based on their components.
type ComponentFilter interface {
	// MatchesComponents returns true if an entity holding exactly these component types matches the filter.
	MatchesComponents(types []reflect.Type) bool
}

// Evaluate returns the entities of the storage that match the filter.
// Entities without any component are never matched.
func Evaluate(storage *ecs.Storage, f ComponentFilter) ecs.EntitySet {
	// a bare CONTAINS is a plain select
	if c, ok := f.(*contains); ok {
		return ecs.Select(storage, c.types...)
	}

	result := ecs.NewEntitySet(0)
	for e := range storage.Entities().All() {
		if f.MatchesComponents(storage.TypesOf(e)) {
			result.Add(e)
		}
	}
	return result
}
