package filter

import "reflect"

type or struct {
	filters []ComponentFilter
}

func Or(filters ...ComponentFilter) ComponentFilter {
	return &or{filters: filters}
}

func (f *or) MatchesComponents(types []reflect.Type) bool {
	for _, filter := range f.filters {
		if filter.MatchesComponents(types) {
			return true
		}
	}
	return false
}
