package filter

import "reflect"

type exact struct {
	types []reflect.Type
}

// Exact matches entities that hold the specified components and nothing else.
// Repeated types count once.
func Exact(types ...reflect.Type) ComponentFilter {
	unique := make([]reflect.Type, 0, len(types))
	for _, t := range types {
		if !containsType(unique, t) {
			unique = append(unique, t)
		}
	}
	return exact{types: unique}
}

func (f exact) MatchesComponents(types []reflect.Type) bool {
	if len(types) != len(f.types) {
		return false
	}
	for _, t := range types {
		if !containsType(f.types, t) {
			return false
		}
	}
	return true
}
