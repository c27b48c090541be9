package ecs_test

import (
	"fmt"
	"reflect"

	"github.com/plus3/lxecs/ecs"
)

type Spawner struct {
	Every int
}

type Projectile struct {
	Owner ecs.Entity
}

type SpawnerSystem struct{}

func (s *SpawnerSystem) Components() []reflect.Type {
	return ecs.Shape1[Spawner]()
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range frame.WorkingSet(s).All() {
		spawner, _ := ecs.GetComponent[Spawner](frame.Storage, e)
		if frame.Tick%uint64(spawner.Every) == 0 {
			frame.Commands.Spawn(Projectile{Owner: e})
		}
	}
}

// ExampleCommands shows a system that creates entities while it iterates.
// Spawns are queued on the frame's Commands and applied after every system
// has run, so no table changes underneath a running iteration.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Spawner](registry)
	ecs.RegisterComponent[Projectile](registry)

	world := ecs.NewWorld(registry, ecs.WithSystems(&SpawnerSystem{}))
	world.Spawn(Spawner{Every: 2})

	for i := 0; i < 6; i++ {
		world.Step(0.016)
	}

	fmt.Println("projectiles:", ecs.Select1[Projectile](world.Storage()).Len())

	// Output:
	// projectiles: 3
}
