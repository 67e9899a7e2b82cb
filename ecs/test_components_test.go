package ecs_test

import "github.com/plus3/eidstore/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

func (p *Position) IsEmpty() bool { return *p == Position{} }

type Velocity struct {
	DX, DY float32
}

func (v *Velocity) IsEmpty() bool { return *v == Velocity{} }

type Name struct {
	Value string
}

func (n *Name) IsEmpty() bool { return n.Value == "" }

// Health counts its releases so tests can check ownership.
type Health struct {
	Current int
	Max     int

	released *int
}

func (h *Health) IsEmpty() bool { return h.Max == 0 }

func (h *Health) Release() {
	if h.released != nil {
		*h.released++
	}
}

func newHealth(hp int, released *int) *Health {
	return &Health{Current: hp, Max: hp, released: released}
}

type PlayerController struct {
	Active bool
}

func (p *PlayerController) IsEmpty() bool { return !p.Active }

// Unregistered is never added to the test registry.
type Unregistered struct {
	Value int
}

func (u *Unregistered) IsEmpty() bool { return u.Value == 0 }

// NotEmpty violates the zero-value contract.
type NotEmpty struct{}

func (n *NotEmpty) IsEmpty() bool { return false }

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	return registry
}

// assertRecorder collects non-strict assertions.
type assertRecorder struct {
	errs []error
}

func (r *assertRecorder) handle(err error) {
	r.errs = append(r.errs, err)
}

func newTestStorage(opts ...ecs.Option) (*ecs.Storage, *assertRecorder) {
	rec := &assertRecorder{}
	opts = append([]ecs.Option{ecs.WithAssertHandler(rec.handle)}, opts...)
	return ecs.NewStorage(newTestRegistry(), opts...), rec
}

// cidOf resolves a Cid in tests, allocating the storage first.
func cidOf[T any](s *ecs.Storage) ecs.Cid {
	s.Alloc()
	cid, ok := ecs.CidOf[T](s.Registry())
	if !ok {
		panic("component type not registered")
	}
	return cid
}
