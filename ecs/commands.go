package ecs

import "reflect"

// Commands buffers structural changes so systems can decide on them while
// iterating query results and apply them once the frame is over.
type Commands struct {
	creates []createCommand
	removes []Entity
	adds    []addComponentCommand
	detachs []removeComponentCommand
	defers  []deferCommand
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type createCommand struct {
	components []Component
	then       func(Entity)
}

type addComponentCommand struct {
	entity    Entity
	component Component
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Create queues the creation of an entity holding the given components.
func (c *Commands) Create(components ...Component) {
	c.creates = append(c.creates, createCommand{components: components})
}

// CreateThen is like Create and calls fn with the new entity once it exists.
func (c *Commands) CreateThen(fn func(Entity), components ...Component) {
	c.creates = append(c.creates, createCommand{components: components, then: fn})
}

// Remove queues an entity removal.
func (c *Commands) Remove(entity Entity) {
	c.removes = append(c.removes, entity)
}

// AddComponent queues a component attach.
func (c *Commands) AddComponent(entity Entity, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component detach.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.detachs = append(c.detachs, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.removes) + len(c.adds) + len(c.detachs) + len(c.defers)
}

// Flush applies every queued operation to m and resets the buffer.
// Removals run first; attaches and detaches aimed at entities that are no
// longer alive are dropped. Operations queued by a CreateThen callback or a
// deferred function are applied in a further pass of the same Flush, so a
// deferred function that always queues another one never returns.
func (c *Commands) Flush(m *EntityManager) {
	for c.Len() > 0 {
		batch := *c
		*c = Commands{}
		batch.apply(m)
		batch.reset()
		if c.Len() == 0 {
			*c = batch
		}
	}
}

func (c *Commands) apply(m *EntityManager) {
	for _, e := range c.removes {
		m.RemoveEntity(e)
	}

	for _, cmd := range c.detachs {
		if m.Alive(cmd.entity) {
			m.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if m.Alive(cmd.entity) {
			m.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, cmd := range c.creates {
		e := m.CreateEntity()
		for _, component := range cmd.components {
			m.AddComponent(e, component)
		}
		if cmd.then != nil {
			cmd.then(e)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}
}

// reset empties the buffer while keeping its capacity.
func (c *Commands) reset() {
	clear(c.creates)
	clear(c.removes)
	clear(c.adds)
	clear(c.detachs)
	clear(c.defers)
	c.creates = c.creates[:0]
	c.removes = c.removes[:0]
	c.adds = c.adds[:0]
	c.detachs = c.detachs[:0]
	c.defers = c.defers[:0]
}
