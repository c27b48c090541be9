package main

import (
	"math/rand"
	"reflect"

	"github.com/plus3/lxecs/ecs"
)

type stepper interface {
	step(dt float64)
}

type C0 struct{ V, W float64 }
type C1 struct{ V, W float64 }
type C2 struct{ V, W float64 }
type C3 struct{ V, W float64 }
type C4 struct{ V, W float64 }
type C5 struct{ V, W float64 }
type C6 struct{ V, W float64 }
type C7 struct{ V, W float64 }

func (c *C0) step(dt float64) { c.V += c.W * dt }
func (c *C1) step(dt float64) { c.V += c.W * dt }
func (c *C2) step(dt float64) { c.V += c.W * dt }
func (c *C3) step(dt float64) { c.V += c.W * dt }
func (c *C4) step(dt float64) { c.V += c.W * dt }
func (c *C5) step(dt float64) { c.V += c.W * dt }
func (c *C6) step(dt float64) { c.V += c.W * dt }
func (c *C7) step(dt float64) { c.V += c.W * dt }

var componentValues = []func(w float64) any{
	func(w float64) any { return C0{W: w} },
	func(w float64) any { return C1{W: w} },
	func(w float64) any { return C2{W: w} },
	func(w float64) any { return C3{W: w} },
	func(w float64) any { return C4{W: w} },
	func(w float64) any { return C5{W: w} },
	func(w float64) any { return C6{W: w} },
	func(w float64) any { return C7{W: w} },
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[C0](registry)
	ecs.RegisterComponent[C1](registry)
	ecs.RegisterComponent[C2](registry)
	ecs.RegisterComponent[C3](registry)
	ecs.RegisterComponent[C4](registry)
	ecs.RegisterComponent[C5](registry)
	ecs.RegisterComponent[C6](registry)
	ecs.RegisterComponent[C7](registry)
}

// randomComponents returns between 1 and limit distinct component values.
func randomComponents(rng *rand.Rand, limit int) []any {
	n := rng.Intn(limit) + 1
	components := make([]any, 0, n)
	for _, idx := range rng.Perm(len(componentValues))[:n] {
		components = append(components, componentValues[idx](rng.Float64()))
	}
	return components
}

// stressSystem steps every component of its shape on every matching entity
// and, when churn is set, spawns that many entities per tick through commands.
type stressSystem struct {
	shape []reflect.Type
	churn int
	rng   *rand.Rand
}

func newStressSystems(rng *rand.Rand, registry *ecs.ComponentRegistry, count, churn int) []ecs.System {
	types := registry.Types()
	systems := make([]ecs.System, count)
	for i := range systems {
		n := rng.Intn(3) + 1
		shape := make([]reflect.Type, 0, n)
		for _, idx := range rng.Perm(len(types))[:n] {
			shape = append(shape, types[idx])
		}
		systems[i] = &stressSystem{shape: shape, rng: rng}
	}
	if count > 0 {
		systems[0].(*stressSystem).churn = churn
	}
	return systems
}

func (s *stressSystem) Components() []reflect.Type {
	return s.shape
}

func (s *stressSystem) Execute(frame *ecs.UpdateFrame) {
	for e := range frame.WorkingSet(s).All() {
		for _, t := range s.shape {
			frame.Storage.Get(e, t).(stepper).step(frame.DeltaTime)
		}
	}
	for i := 0; i < s.churn; i++ {
		frame.Commands.Spawn(randomComponents(s.rng, 5)...)
	}
}
