package filter

import "reflect"

type contains struct {
	types []reflect.Type
}

// Contains matches entities that hold all the components specified.
// At least one type is required.
func Contains(types ...reflect.Type) ComponentFilter {
	if len(types) == 0 {
		panic("CONTAINS requires at least one component type")
	}
	return &contains{types: types}
}

func (f *contains) MatchesComponents(types []reflect.Type) bool {
	for _, t := range f.types {
		if !containsType(types, t) {
			return false
		}
	}
	return true
}
