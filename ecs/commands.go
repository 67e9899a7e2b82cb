package ecs

import "github.com/kamstrup/intmap"

// Commands buffers destructive operations so they can be issued while the
// storage is being iterated and applied once the loop is done.
type Commands struct {
	spawns   []spawnCommand
	destroys []Eid
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []deferCommand
}

// NewCommands creates an empty buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []Component
	then       func(Eid)
}

type addComponentCommand struct {
	entity    Eid
	component Component
}

type removeComponentCommand struct {
	entity Eid
	cid    Cid
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues the creation of an entity with the given components.
func (c *Commands) Spawn(components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen queues a spawn and calls fn with the new identifier, which is
// InvalidEid when the storage was full.
func (c *Commands) SpawnThen(fn func(Eid), components ...Component) {
	c.spawns = append(c.spawns, spawnCommand{components: components, then: fn})
}

// Destroy queues the destruction of an entity.
func (c *Commands) Destroy(entity Eid) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues attaching component to entity under its registered Cid.
func (c *Commands) AddComponent(entity Eid, component Component) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues detaching the cid component of entity.
func (c *Commands) RemoveComponent(entity Eid, cid Cid) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		cid:    cid,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the buffer to storage and resets it. Destroys run first;
// removes and adds aimed at destroyed entities are dropped, and dropped
// components are released. Spawns and deferred functions run last.
func (c *Commands) Flush(storage *Storage) {
	destroyed := intmap.New[Eid, struct{}](len(c.destroys))

	for _, eid := range c.destroys {
		storage.DestroyNow(eid)
		destroyed.Put(eid, struct{}{})
	}

	for _, cmd := range c.removes {
		if _, ok := destroyed.Get(cmd.entity); !ok {
			storage.RemoveComponent(cmd.cid, cmd.entity)
		}
	}

	for _, cmd := range c.adds {
		if _, ok := destroyed.Get(cmd.entity); ok {
			if cmd.component != nil {
				release(cmd.component)
			}
			continue
		}
		storage.Attach(cmd.entity, cmd.component)
	}

	for _, cmd := range c.spawns {
		eid := Spawn(storage, cmd.components...)
		if cmd.then != nil {
			cmd.then(eid)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
