package ecs

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// Systems use it to create entities or attach components while another system's
// iteration over the same tables could still be running.
type Commands struct {
	spawns []spawnCommand
	adds   []addComponentCommand
	defers []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// AddComponent queues a component insert-or-overwrite operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.adds) + len(c.defers)
}

// Flush applies all commands to the provided storage in the order adds, spawns,
// defers, and resets the buffer state.
func (c *Commands) Flush(storage *Storage) {
	for _, cmd := range c.adds {
		storage.Set(cmd.entity, cmd.component)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.adds = c.adds[:0]
	c.defers = c.defers[:0]
}
