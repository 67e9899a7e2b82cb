package ecs

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

var (
	// ErrInvalidEntity is asserted when an operation names an identifier that is
	// out of range or not live.
	ErrInvalidEntity = eris.New("invalid entity")

	// ErrInvalidComponentType is asserted when a Cid is out of range or a
	// component type was never registered.
	ErrInvalidComponentType = eris.New("invalid component type")

	// ErrComponentTypeMismatch is asserted when a component value is attached
	// under a Cid registered for a different type.
	ErrComponentTypeMismatch = eris.New("component type does not match cid")

	// ErrCapacityExhausted is asserted when Create finds no free identifier.
	ErrCapacityExhausted = eris.New("maximum number of entities reached")

	// ErrIndexModified is asserted when a live Iter observes a change to the
	// index it is walking.
	ErrIndexModified = eris.New("component index modified during iteration")
)

// AssertHandler receives every assertion raised by a Storage.
type AssertHandler func(err error)

// assert routes a failed precondition. Strict storages panic; others log the
// failure and hand it to the configured handler.
func (s *Storage) assert(err error) {
	if s.cfg.Strict {
		panic(err)
	}
	s.log.Warn("ecs assertion", zap.Error(err))
	if s.onAssert != nil {
		s.onAssert(err)
	}
}
