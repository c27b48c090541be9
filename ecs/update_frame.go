package ecs

// UpdateFrame is the context handed to every system during one tick.
type UpdateFrame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
	Resources *Resources
}

func newUpdateFrame(tick uint64, dt float64, storage *Storage, resources *Resources) *UpdateFrame {
	return &UpdateFrame{
		Tick:      tick,
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
		Resources: resources,
	}
}

// WorkingSet selects the entities matching the system's query shape.
func (f *UpdateFrame) WorkingSet(system System) EntitySet {
	return Select(f.Storage, system.Components()...)
}
