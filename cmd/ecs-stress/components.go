package main

import (
	"math/rand"

	"github.com/plus3/eidstore/ecs"
)

type Position struct {
	X, Y float32
}

func (p *Position) IsEmpty() bool { return *p == Position{} }

type Velocity struct {
	DX, DY float32
}

func (v *Velocity) IsEmpty() bool { return *v == Velocity{} }

// Lifetime counts down the remaining ticks of an entity.
type Lifetime struct {
	Ticks int
}

func (l *Lifetime) IsEmpty() bool { return l.Ticks == 0 }

// Payload carries a heap buffer that is returned to the pool on release.
type Payload struct {
	Data []byte
	pool *payloadPool
}

func (p *Payload) IsEmpty() bool { return p.Data == nil }

func (p *Payload) Release() {
	if p.pool != nil {
		p.pool.put(p.Data)
	}
	p.Data = nil
}

// payloadPool recycles payload buffers and counts outstanding ones, so the
// report can show that every component was released exactly once.
type payloadPool struct {
	free        [][]byte
	size        int
	outstanding int
}

func (pp *payloadPool) get() *Payload {
	pp.outstanding++
	var buf []byte
	if n := len(pp.free); n > 0 {
		buf = pp.free[n-1]
		pp.free = pp.free[:n-1]
	} else {
		buf = make([]byte, pp.size)
	}
	return &Payload{Data: buf, pool: pp}
}

func (pp *payloadPool) put(buf []byte) {
	pp.outstanding--
	pp.free = append(pp.free, buf)
}

func registerComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Payload](registry)
}

// randomComponents builds 1 to 4 components for a new entity. Every entity
// gets a lifetime so the population keeps churning.
func randomComponents(rng *rand.Rand, pool *payloadPool, maxLifetime int) []ecs.Component {
	components := []ecs.Component{
		&Lifetime{Ticks: rng.Intn(maxLifetime) + 1},
	}
	if rng.Intn(2) == 0 {
		components = append(components, &Position{X: rng.Float32() * 100, Y: rng.Float32() * 100})
	}
	if rng.Intn(2) == 0 {
		components = append(components, &Velocity{DX: rng.Float32() - 0.5, DY: rng.Float32() - 0.5})
	}
	if rng.Intn(4) == 0 {
		components = append(components, pool.get())
	}
	return components
}
