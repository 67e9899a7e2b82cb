package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/eidstore/ecs"
)

type Transform struct {
	X, Y float32
}

func (t *Transform) IsEmpty() bool { return *t == Transform{} }

type Speed struct {
	DX, DY float32
}

func (s *Speed) IsEmpty() bool { return *s == Speed{} }

type Hitpoints struct {
	Current, Max int
}

func (h *Hitpoints) IsEmpty() bool { return h.Max == 0 }

type PhysicsSystem struct {
	Entities ecs.View[struct {
		*Transform
		*Speed
	}]
}

func (s *PhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Entities.Values() {
		entity.Transform.X += entity.Speed.DX * float32(frame.DeltaTime)
		entity.Transform.Y += entity.Speed.DY * float32(frame.DeltaTime)
	}
}

type HealingSystem struct {
	Entities  ecs.Query[Hitpoints]
	RegenRate float32
}

func (s *HealingSystem) Execute(frame *ecs.UpdateFrame) {
	for hp := range s.Entities.Values() {
		if hp.Current < hp.Max {
			hp.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if hp.Current > hp.Max {
				hp.Current = hp.Max
			}
		}
	}
}

func newSchedulerRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Hitpoints](registry)
	return registry
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// The Scheduler initializes Query and View fields, refreshes queries before
// each system runs, and flushes the frame's command buffer at the end.
// Systems are executed in registration order.
func ExampleScheduler() {
	storage := ecs.NewStorage(newSchedulerRegistry())

	ecs.Spawn(storage,
		&Transform{X: 0, Y: 0},
		&Speed{DX: 10, DY: 5},
		&Hitpoints{Current: 80, Max: 100},
	)
	ecs.Spawn(storage,
		&Transform{X: 100, Y: 100},
		&Speed{DX: -5, DY: -5},
		&Hitpoints{Current: 50, Max: 100},
	)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&HealingSystem{RegenRate: 10})

	scheduler.Once(1.0)

	view := ecs.NewView[struct {
		*Transform
		*Hitpoints
	}](storage)

	fmt.Println("After one frame:")
	for item := range view.Values() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Transform.X, item.Transform.Y,
			item.Hitpoints.Current, item.Hitpoints.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous game loop.
// The Run method blocks and executes all systems at a fixed interval
// until the context is cancelled.
func ExampleScheduler_Run() {
	storage := ecs.NewStorage(newSchedulerRegistry())
	ecs.Spawn(storage, &Transform{X: 0, Y: 0}, &Speed{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

// ReaperSystem destroys entities whose hitpoints ran out. Destruction goes
// through the command buffer, so it is applied after every system has run.
type ReaperSystem struct {
	Entities ecs.Query[Hitpoints]
}

func (s *ReaperSystem) Execute(frame *ecs.UpdateFrame) {
	for eid, hp := range s.Entities.Iter() {
		hp.Current -= 30
		if hp.Current <= 0 {
			frame.Commands.Destroy(eid)
			frame.Commands.Defer(func() {
				fmt.Printf("entity %d reaped\n", eid)
			})
		}
	}
}

// ExampleCommands queues destruction from inside a system.
func ExampleCommands() {
	storage := ecs.NewStorage(newSchedulerRegistry())
	ecs.Spawn(storage, &Hitpoints{Current: 100, Max: 100})
	ecs.Spawn(storage, &Hitpoints{Current: 40, Max: 100})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ReaperSystem{})

	scheduler.Once(1.0)
	scheduler.Once(1.0)
	fmt.Printf("remaining: %d\n", storage.Count())

	// Output:
	// entity 2 reaped
	// remaining: 1
}
