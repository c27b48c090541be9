package ecs

import "reflect"

// System represents a behavior that operates on entities with specific components.
// Components declares the query shape of the system; the frame's WorkingSet
// returns the entities matching it. Systems can include Query and Resource
// fields, which the Dispatcher initializes, as well as custom state fields
// that persist between frames.
type System interface {
	Components() []reflect.Type
	Execute(frame *UpdateFrame)
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	return systemType.Name()
}
