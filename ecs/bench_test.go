package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/lxecs/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnWithMultipleComponents(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(
			Position{X: 1.0, Y: 2.0},
			Velocity{DX: 0.5, DY: 0.5},
			Health{Current: 100, Max: 100},
			Name{Value: "Entity"},
		)
	}
}

func BenchmarkGetComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.GetComponent[Position](storage, id)
	}
}

func BenchmarkReadComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1.0, Y: 2.0})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkAddComponent(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())

	ids := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{X: 1.0, Y: 2.0})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.AddComponent(storage, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}
}

func populate(storage *ecs.Storage, n int) {
	for i := 0; i < n; i++ {
		e := storage.Spawn(Position{X: float32(i)})
		if i%2 == 0 {
			ecs.AddComponent(storage, e, Velocity{DX: 1})
		}
		if i%10 == 0 {
			ecs.AddComponent(storage, e, Health{Current: i})
		}
	}
}

func BenchmarkSelect(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		storage := ecs.NewStorage(newTestRegistry())
		populate(storage, size)
		types := []reflect.Type{positionType, velocityType, healthType}

		b.Run(fmt.Sprintf("entities=%d", size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = ecs.Select(storage, types...)
			}
		})
	}
}

func BenchmarkViewIter(b *testing.B) {
	storage := ecs.NewStorage(newTestRegistry())
	populate(storage, 10000)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkWorldStep(b *testing.B) {
	world := ecs.NewWorld(newTestRegistry(),
		ecs.WithResources(GravityConfig{Pull: 0.1}),
		ecs.WithSystems(&GravitySystem{}, &MovementSystem{}, &HealthSystem{}),
	)
	populate(world.Storage(), 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Step(0.016)
	}
}
