package filter

import "reflect"

type all struct{}

// All matches every entity that holds at least one component.
func All() ComponentFilter {
	return &all{}
}

func (f *all) MatchesComponents(_ []reflect.Type) bool {
	return true
}
