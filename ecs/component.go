package ecs

import (
	"reflect"

	"github.com/rotisserie/eris"
)

// Cid is the dense tag assigned to a registered component type.
type Cid uint32

// Component is implemented by every value stored in a Storage.
// IsEmpty reports whether the instance is in its blank, unset state. The zero
// value of a registered component type must report true.
//
// A Storage owns each instance it holds. An instance must be attached to at
// most one (Cid, Eid) slot; the Storage does not check this, and an instance
// attached twice is released once per slot.
type Component interface {
	IsEmpty() bool
}

// Releaser is an optional capability of a Component. Release is called exactly
// once when the storage drops the instance: on removal, on replacement, when its
// entity is destroyed, or when the storage is deallocated.
type Releaser interface {
	Release()
}

// ComponentPtr constrains type parameters to pointer-to-T component implementations.
type ComponentPtr[T any] interface {
	*T
	Component
}

// ComponentRegistry assigns Cids to component types. Each Storage is bound to one
// registry, and the registry is sealed the first time a bound Storage allocates:
// the per-type tables are sized by NumCids at that moment.
type ComponentRegistry struct {
	types  []reflect.Type
	byType map[reflect.Type]Cid
	sealed bool
}

// NewComponentRegistry creates an empty, unsealed registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byType: make(map[reflect.Type]Cid),
	}
}

// RegisterComponent registers T and returns its Cid. Registering the same type
// twice returns the existing Cid.
// It panics if the registry is sealed or if the zero value of T is not empty.
func RegisterComponent[T any, PT ComponentPtr[T]](r *ComponentRegistry) Cid {
	t := reflect.TypeFor[T]()
	if cid, ok := r.byType[t]; ok {
		return cid
	}
	if r.sealed {
		panic(eris.Errorf("cannot register component %s: registry is sealed", t))
	}

	var zero T
	if !PT(&zero).IsEmpty() {
		panic(eris.Errorf("cannot register component %s: zero value must report IsEmpty", t))
	}

	cid := Cid(len(r.types))
	r.types = append(r.types, t)
	r.byType[t] = cid
	return cid
}

// NumCids returns the number of registered component types.
func (r *ComponentRegistry) NumCids() int {
	return len(r.types)
}

// Sealed reports whether registration is closed.
func (r *ComponentRegistry) Sealed() bool {
	return r.sealed
}

// Seal closes registration. Storage.Alloc calls it; calling it earlier is allowed.
func (r *ComponentRegistry) Seal() {
	r.sealed = true
}

// Type returns the component type registered under cid, or nil.
func (r *ComponentRegistry) Type(cid Cid) reflect.Type {
	if int(cid) >= len(r.types) {
		return nil
	}
	return r.types[cid]
}

// Name returns a readable name for cid.
func (r *ComponentRegistry) Name(cid Cid) string {
	t := r.Type(cid)
	if t == nil {
		return "<unregistered>"
	}
	return t.String()
}

// lookup resolves the Cid of a component type. Lookups fail until the registry is sealed.
func (r *ComponentRegistry) lookup(t reflect.Type) (Cid, bool) {
	if !r.sealed {
		return 0, false
	}
	cid, ok := r.byType[t]
	return cid, ok
}

// cidOfValue resolves the Cid for a *T component value.
func (r *ComponentRegistry) cidOfValue(c Component) (Cid, bool) {
	t := reflect.TypeOf(c)
	if t == nil || t.Kind() != reflect.Pointer {
		return 0, false
	}
	return r.lookup(t.Elem())
}

// accepts reports whether c has the dynamic type registered under cid.
func (r *ComponentRegistry) accepts(cid Cid, c Component) bool {
	t := reflect.TypeOf(c)
	return t != nil && t.Kind() == reflect.Pointer && t.Elem() == r.Type(cid)
}

// CidOf returns the Cid registered for T. It reports false for unregistered
// types and while the registry is still open.
func CidOf[T any](r *ComponentRegistry) (Cid, bool) {
	return r.lookup(reflect.TypeFor[T]())
}
