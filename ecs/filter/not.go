package filter

import "reflect"

func Not(filter ComponentFilter) ComponentFilter {
	return &not{filter: filter}
}

type not struct {
	filter ComponentFilter
}

func (f *not) MatchesComponents(types []reflect.Type) bool {
	return !f.filter.MatchesComponents(types)
}
