package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Attach adds c under the Cid registered for its dynamic type.
func (s *Storage) Attach(eid Eid, c Component) {
	if c == nil {
		return
	}
	cid, ok := s.registry.cidOfValue(c)
	if !ok {
		if !s.Exists(eid) {
			s.assert(eris.Wrapf(ErrInvalidEntity, "attach: %T to eid %d", c, eid))
		} else {
			s.assert(eris.Wrapf(ErrInvalidComponentType, "attach: %T to eid %d", c, eid))
		}
		return
	}
	s.AddComponent(cid, eid, c)
}

// Spawn creates an entity and attaches components to it. When the storage is
// full it returns InvalidEid and releases the components.
func Spawn(s *Storage, components ...Component) Eid {
	eid := s.Create()
	if eid == InvalidEid {
		for _, c := range components {
			if c != nil {
				release(c)
			}
		}
		return InvalidEid
	}

	for _, c := range components {
		s.Attach(eid, c)
	}
	return eid
}

// Add attaches c to eid. See Storage.AddComponent.
func Add[T any, PT ComponentPtr[T]](s *Storage, eid Eid, c PT) {
	if c == nil {
		return
	}
	cid, ok := typedCid[T](s, "add component", eid)
	if !ok {
		return
	}
	s.AddComponent(cid, eid, c)
}

// Remove detaches the T component of eid. See Storage.RemoveComponent.
func Remove[T any](s *Storage, eid Eid) {
	cid, ok := typedCid[T](s, "remove component", eid)
	if !ok {
		return
	}
	s.RemoveComponent(cid, eid)
}

// Has reports whether eid holds a T component.
func Has[T any](s *Storage, eid Eid) bool {
	_, ok := Get[T](s, eid)
	return ok
}

// Get returns the T component of eid.
func Get[T any](s *Storage, eid Eid) (*T, bool) {
	cid, ok := CidOf[T](s.registry)
	if !ok {
		return nil, false
	}
	c, ok := any(s.GetComponent(cid, eid)).(*T)
	return c, ok && c != nil
}

// Ref returns the T component of eid, or a new blank T when eid holds none.
// The blank reports IsEmpty and is never stored; writes to it are discarded.
func Ref[T any](s *Storage, eid Eid) *T {
	if c, ok := Get[T](s, eid); ok {
		return c
	}
	return new(T)
}

// EntitiesWith returns a copy of the identifiers holding T, in attach order.
func EntitiesWith[T any](s *Storage) []Eid {
	cid, ok := CidOf[T](s.registry)
	if !ok {
		return nil
	}
	return s.GetAll(cid)
}

// CountWith returns the number of entities holding T.
func CountWith[T any](s *Storage) int {
	cid, ok := CidOf[T](s.registry)
	if !ok {
		return 0
	}
	return s.CountOf(cid)
}

// typedCid resolves the Cid of T for a mutating call, asserting on failure.
func typedCid[T any](s *Storage, op string, eid Eid) (Cid, bool) {
	if cid, ok := CidOf[T](s.registry); ok {
		return cid, true
	}
	if !s.Exists(eid) {
		s.assert(eris.Wrapf(ErrInvalidEntity, "%s: eid %d", op, eid))
	} else {
		s.assert(eris.Wrapf(ErrInvalidComponentType, "%s: %s eid %d", op, reflect.TypeFor[T](), eid))
	}
	return 0, false
}
