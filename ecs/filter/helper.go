package filter

import "reflect"

func containsType(types []reflect.Type, t reflect.Type) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
