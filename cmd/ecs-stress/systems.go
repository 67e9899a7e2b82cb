package main

import (
	"math/rand"

	"github.com/plus3/eidstore/ecs"
)

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	Moving ecs.View[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for item := range s.Moving.Values() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
	}
}

// LifetimeSystem ages every entity and destroys it directly when its time is
// up. The query snapshot makes destruction inside the loop safe.
type LifetimeSystem struct {
	Entities ecs.Query[Lifetime]

	expired int64
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for eid, lt := range s.Entities.Iter() {
		lt.Ticks--
		if lt.Ticks <= 0 {
			frame.Storage.DestroyNow(eid)
			s.expired++
		}
	}
}

// SpawnSystem refills the population up to target through the command buffer.
type SpawnSystem struct {
	target      int
	maxLifetime int
	rng         *rand.Rand
	pool        *payloadPool

	spawned int64
	failed  int64
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	for missing := s.target - frame.Storage.Count(); missing > 0; missing-- {
		frame.Commands.SpawnThen(s.onSpawn, randomComponents(s.rng, s.pool, s.maxLifetime)...)
	}
}

func (s *SpawnSystem) onSpawn(eid ecs.Eid) {
	if eid == ecs.InvalidEid {
		s.failed++
		return
	}
	s.spawned++
}

// ChurnSystem attaches and detaches payloads on random entities so the
// replacement and removal paths see traffic.
type ChurnSystem struct {
	Moving ecs.Query[Velocity]

	rng  *rand.Rand
	pool *payloadPool
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	for eid := range s.Moving.Iter() {
		switch s.rng.Intn(8) {
		case 0:
			frame.Commands.AddComponent(eid, s.pool.get())
		case 1:
			ecs.Remove[Payload](frame.Storage, eid)
		}
	}
}
