package ecs

import (
	"context"
	"reflect"
	"time"
)

// World ties together one Storage, one Dispatcher and one Resources set.
// All three are fixed when the World is created.
type World struct {
	storage    *Storage
	resources  *Resources
	dispatcher *Dispatcher
	clock      func() time.Time
	lastTick   time.Time
	ticks      uint64
}

type worldOptions struct {
	systems   []System
	resources []any
	clock     func() time.Time
}

// WorldOption configures a World at construction.
type WorldOption func(*worldOptions)

// WithSystems sets the systems of the world, in execution order.
func WithSystems(systems ...System) WorldOption {
	return func(o *worldOptions) {
		o.systems = append(o.systems, systems...)
	}
}

// WithResources sets the singleton resources of the world.
func WithResources(resources ...any) WorldOption {
	return func(o *worldOptions) {
		o.resources = append(o.resources, resources...)
	}
}

// WithClock replaces time.Now as the source of time for Tick.
func WithClock(clock func() time.Time) WorldOption {
	return func(o *worldOptions) {
		o.clock = clock
	}
}

// NewWorld creates a world whose storage holds the types registered on the registry.
func NewWorld(registry *ComponentRegistry, opts ...WorldOption) *World {
	options := worldOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&options)
	}

	storage := NewStorage(registry)
	resources := NewResources(options.resources...)

	return &World{
		storage:    storage,
		resources:  resources,
		dispatcher: NewDispatcher(storage, resources, options.systems...),
		clock:      options.clock,
	}
}

// Tick runs one frame with the time elapsed since the previous Tick as delta.
// The first tick has a delta of zero.
func (w *World) Tick() {
	now := w.clock()
	dt := 0.0
	if !w.lastTick.IsZero() {
		dt = now.Sub(w.lastTick).Seconds()
	}
	w.lastTick = now
	w.Step(dt)
}

// Step runs one frame with an explicit delta time: every system in order,
// then the frame's queued commands.
func (w *World) Step(dt float64) {
	w.ticks++
	frame := newUpdateFrame(w.ticks, dt, w.storage, w.resources)
	w.dispatcher.Dispatch(frame)
	frame.Commands.Flush(w.storage)
}

// Run ticks the world at the given interval until the context is cancelled.
func (w *World) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Tick()
		}
	}
}

// TickCount returns the number of frames run so far.
func (w *World) TickCount() uint64 {
	return w.ticks
}

func (w *World) CreateEntity() Entity {
	return w.storage.CreateEntity()
}

func (w *World) Spawn(components ...any) Entity {
	return w.storage.Spawn(components...)
}

func (w *World) Set(e Entity, component any) {
	w.storage.Set(e, component)
}

func (w *World) Storage() *Storage {
	return w.storage
}

func (w *World) Resources() *Resources {
	return w.resources
}

func (w *World) Dispatcher() *Dispatcher {
	return w.dispatcher
}

// ComponentNames returns the names of the component types in the world's storage.
func (w *World) ComponentNames() []string {
	types := w.storage.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return names
}

// SystemNames returns the system names in execution order.
func (w *World) SystemNames() []string {
	return w.dispatcher.SystemNames()
}

// TypeOf is shorthand for reflect.TypeFor, used when building query shapes by hand.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
