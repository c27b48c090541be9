package ecs_test

import (
	"fmt"
	"slices"

	"github.com/plus3/lxecs/ecs"
)

// ExampleView demonstrates using Views for typed access to a combination of
// components. Views don't need a World and select their entities on demand,
// which makes them handy for tools and one-off queries.
func ExampleView() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	player := storage.Spawn(
		Position{X: 10, Y: 20},
		Velocity{DX: 1, DY: 0},
		Health{Current: 100, Max: 100},
	)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	if item := view.Get(player); item != nil {
		fmt.Printf("Player at (%.0f, %.0f) moving (%.0f, %.0f)\n",
			item.Position.X, item.Position.Y, item.Velocity.DX, item.Velocity.DY)
	}

	// Output:
	// Player at (10, 20) moving (1, 0)
}

// ExampleView_optional demonstrates optional components. A single view matches
// entities that may or may not have the optional component.
func ExampleView_optional() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Health](registry)
	storage := ecs.NewStorage(registry)

	storage.Spawn(Position{X: 10, Y: 10}, Health{Current: 50, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20}, Health{Current: 75, Max: 100})
	storage.Spawn(Position{X: 30, Y: 30})

	view := ecs.NewView[struct {
		Id       ecs.Entity
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	var lines []string
	for _, item := range view.Iter() {
		if item.Health != nil {
			lines = append(lines, fmt.Sprintf("%d: (%.0f, %.0f) health %d/%d",
				item.Id, item.Position.X, item.Position.Y, item.Health.Current, item.Health.Max))
		} else {
			lines = append(lines, fmt.Sprintf("%d: (%.0f, %.0f) invulnerable",
				item.Id, item.Position.X, item.Position.Y))
		}
	}
	slices.Sort(lines)

	for _, line := range lines {
		fmt.Println(line)
	}

	// Output:
	// 0: (10, 10) health 50/100
	// 1: (20, 20) health 75/100
	// 2: (30, 30) invulnerable
}
