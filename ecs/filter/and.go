package filter

import "reflect"

type and struct {
	filters []ComponentFilter
}

func And(filters ...ComponentFilter) ComponentFilter {
	return &and{filters: filters}
}

func (f *and) MatchesComponents(types []reflect.Type) bool {
	for _, filter := range f.filters {
		if !filter.MatchesComponents(types) {
			return false
		}
	}
	return true
}
