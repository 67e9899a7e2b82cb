package ecs

import (
	"iter"
	"reflect"
)

// View joins several component types. T must be a struct whose fields are
// pointers to registered component types, for example
//
//	struct {
//		*Position
//		*Velocity
//		Name *Name `ecs:"optional"`
//	}
//
// Embedded fields are always required. Named fields can be marked optional with
// the `ecs:"optional"` struct tag; they are nil when the entity lacks them.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool

	// cids is resolved on first use, once the registry is sealed.
	cids []Cid
}

// NewView creates a new view for the given struct type.
// It panics if T is not a struct of pointer fields.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{}
	v.Init(storage)
	return v
}

// Init binds the View to a storage and parses the field layout of T.
// Called by the Scheduler during system registration.
func (v *View[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v.storage = storage
	v.types = make([]reflect.Type, 0, structType.NumField())
	v.optional = make([]bool, 0, structType.NumField())
	v.cids = nil

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Pointer {
			panic("View struct fields must be pointer types")
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
	}
}

// resolve looks up the Cid of every field type. It reports false while the
// registry is open or when a field type was never registered.
func (v *View[T]) resolve() bool {
	if v.cids != nil {
		return true
	}
	cids := make([]Cid, len(v.types))
	for i, t := range v.types {
		cid, ok := v.storage.registry.lookup(t)
		if !ok {
			return false
		}
		cids[i] = cid
	}
	v.cids = cids
	return true
}

// Fill populates ptr with the components of eid.
// Returns false if eid is missing any required component.
func (v *View[T]) Fill(eid Eid, ptr *T) bool {
	if !v.resolve() || !v.storage.Exists(eid) {
		return false
	}

	result := reflect.ValueOf(ptr).Elem()
	for i, cid := range v.cids {
		field := result.Field(i)
		c := v.storage.GetComponent(cid, eid)
		if c == nil {
			if !v.optional[i] {
				return false
			}
			field.SetZero()
			continue
		}
		field.Set(reflect.ValueOf(c))
	}
	return true
}

// Get returns a populated view struct for eid, or nil if eid doesn't hold
// every required component.
func (v *View[T]) Get(eid Eid) *T {
	var result T
	if !v.Fill(eid, &result) {
		return nil
	}
	return &result
}

// driver picks the smallest required index to walk. It reports false when the
// view has no required field.
func (v *View[T]) driver() (Cid, bool) {
	best, found := Cid(0), false
	for i, cid := range v.cids {
		if v.optional[i] {
			continue
		}
		if !found || v.storage.CountOf(cid) < v.storage.CountOf(best) {
			best, found = cid, true
		}
	}
	return best, found
}

// Iter yields every entity holding all required components. It walks a
// snapshot of the smallest required index, so the loop body may mutate the
// storage; entities that no longer match when reached are skipped.
// A view with only optional fields visits every live entity.
func (v *View[T]) Iter() iter.Seq2[Eid, T] {
	return func(yield func(Eid, T) bool) {
		if !v.resolve() {
			return
		}

		var candidates []Eid
		if cid, ok := v.driver(); ok {
			candidates = v.storage.GetAll(cid)
		} else {
			for eid := range v.storage.Entities() {
				candidates = append(candidates, eid)
			}
		}

		var result T
		for _, eid := range candidates {
			if !v.Fill(eid, &result) {
				continue
			}
			if !yield(eid, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity holding the non-nil fields of data. The storage
// takes ownership of the pointed-to components. It panics if a required
// field is nil.
func (v *View[T]) Spawn(data T) Eid {
	value := reflect.ValueOf(data)

	components := make([]Component, 0, len(v.types))
	for i := range v.types {
		field := value.Field(i)
		if field.IsNil() {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}
		c, ok := field.Interface().(Component)
		if !ok {
			panic("View field " + v.types[i].String() + " does not implement Component")
		}
		components = append(components, c)
	}

	return Spawn(v.storage, components...)
}
