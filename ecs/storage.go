// Package ecs stores typed components against integer entity identifiers with
// constant-time attach, detach and lookup, and per-type iteration in attach
// order. Nothing in the package is safe for concurrent use.
package ecs

import (
	"iter"
	"reflect"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Storage is a fixed-capacity entity/component store. It owns a liveness table
// for entity identifiers and, per registered component type, a dense table of
// component instances plus the list of identifiers holding that type.
//
// A Storage is not safe for concurrent use. Exactly one goroutine may own it.
type Storage struct {
	registry *ComponentRegistry
	cfg      Config
	log      *zap.Logger
	onAssert AssertHandler

	// entities and columns are nil until Alloc.
	entities *entitySpace
	columns  []*componentColumn

	// generation advances whenever an entity or an index membership changes.
	generation uint64
}

// NewStorage creates a storage bound to registry. Backing tables are not
// allocated until Alloc or the first Create, so component types may keep
// registering until then.
func NewStorage(registry *ComponentRegistry, opts ...Option) *Storage {
	s := &Storage{
		registry: registry,
		cfg:      DefaultConfig(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.MaxEntities < 2 {
		s.log.Warn("invalid max entities, using default",
			zap.Int("max_entities", s.cfg.MaxEntities),
			zap.Int("default", DefaultMaxEntities))
		s.cfg.MaxEntities = DefaultMaxEntities
	}
	return s
}

// Registry returns the component registry the storage is bound to.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Config returns the effective configuration.
func (s *Storage) Config() Config {
	return s.cfg
}

// Capacity returns the identifier ceiling. Valid identifiers are [1, Capacity()).
func (s *Storage) Capacity() int {
	return s.cfg.MaxEntities
}

// Allocated reports whether the backing tables exist.
func (s *Storage) Allocated() bool {
	return s.entities != nil
}

// Alloc seals the registry and allocates the liveness table and one column per
// component type. It is a no-op when already allocated.
func (s *Storage) Alloc() {
	if s.entities != nil {
		return
	}
	s.registry.Seal()

	numCids := s.registry.NumCids()
	if s.tracing(1) {
		s.log.Debug("allocating entities",
			zap.Int("capacity", s.cfg.MaxEntities),
			zap.Int("component_types", numCids))
	}

	s.entities = newEntitySpace(s.cfg.MaxEntities)
	s.columns = make([]*componentColumn, numCids)
	for i := range s.columns {
		s.columns[i] = newComponentColumn(s.cfg.MaxEntities)
	}
}

// Dealloc destroys every live entity and drops the backing tables. Components
// obtained before Dealloc must not be used afterwards.
func (s *Storage) Dealloc() {
	if s.entities == nil {
		return
	}
	if s.tracing(1) {
		s.log.Debug("deallocating entities", zap.Int("live", s.entities.count))
	}

	s.DestroyAll()
	s.entities = nil
	s.columns = nil
}

// Create allocates the storage if needed and returns the lowest free
// identifier. It returns InvalidEid when the storage is full.
func (s *Storage) Create() Eid {
	s.Alloc()

	eid := s.entities.claim()
	if eid == InvalidEid {
		s.assert(eris.Wrapf(ErrCapacityExhausted, "create: capacity %d", s.cfg.MaxEntities))
		return InvalidEid
	}

	s.generation++
	if s.tracing(1) {
		s.log.Debug("entity created", zap.Uint32("eid", uint32(eid)))
	}
	return eid
}

// Exists reports whether eid is live. Any identifier is accepted.
func (s *Storage) Exists(eid Eid) bool {
	return s.entities != nil && s.entities.exists(eid)
}

// Count returns the number of live entities.
func (s *Storage) Count() int {
	if s.entities == nil {
		return 0
	}
	return s.entities.count
}

// Entities yields live identifiers in ascending order. Destroying the
// identifier being visited is allowed.
func (s *Storage) Entities() iter.Seq[Eid] {
	return func(yield func(Eid) bool) {
		if s.entities == nil {
			return
		}
		for eid := range s.entities.all() {
			if !yield(eid) {
				return
			}
		}
	}
}

// DestroyNow removes every component attached to eid and retires the
// identifier. Destroying InvalidEid or a dead identifier does nothing.
func (s *Storage) DestroyNow(eid Eid) {
	if eid == InvalidEid || !s.Exists(eid) {
		return
	}
	if s.tracing(1) {
		s.log.Debug("entity being destroyed", zap.Uint32("eid", uint32(eid)))
	}

	for cid := range s.columns {
		s.removeComponent(Cid(cid), eid)
	}
	s.entities.release(eid)
	s.generation++
}

// DestroyAll destroys every live entity, releasing every component once. The
// columns are cleared in bulk, so nothing is traced per entity.
func (s *Storage) DestroyAll() {
	if s.entities == nil {
		return
	}
	if s.tracing(1) {
		s.log.Debug("destroying all entities", zap.Int("live", s.entities.count))
	}

	for _, col := range s.columns {
		col.reset()
	}
	s.entities.reset()
	s.generation++
}

// AddComponent attaches c to eid under cid, taking ownership of it. A component
// already in the slot is released first. Invalid identifiers, tags, or values
// of the wrong type are asserted and ignored; a nil component is ignored.
// The caller must not attach c anywhere else: every slot holding c releases it.
func (s *Storage) AddComponent(cid Cid, eid Eid, c Component) {
	if c == nil {
		return
	}
	if !s.checkTarget("add component", cid, eid) {
		return
	}
	if !s.registry.accepts(cid, c) {
		s.assert(eris.Wrapf(ErrComponentTypeMismatch,
			"add component: cid %d (%s) eid %d got %T", cid, s.registry.Name(cid), eid, c))
		return
	}
	if reflect.ValueOf(c).IsNil() {
		return
	}

	col := s.columns[cid]
	prev := col.get(eid)
	if prev == c {
		return
	}

	if s.tracing(1) {
		s.log.Debug("adding component",
			zap.Uint32("cid", uint32(cid)),
			zap.String("type", s.registry.Name(cid)),
			zap.Uint32("eid", uint32(eid)),
			zap.Bool("replace", prev != nil))
	}

	col.set(eid, c)
	if prev == nil {
		s.generation++
	} else {
		release(prev)
	}
}

// RemoveComponent detaches and releases the cid component of eid. Removing an
// absent component does nothing.
func (s *Storage) RemoveComponent(cid Cid, eid Eid) {
	if !s.checkTarget("remove component", cid, eid) {
		return
	}
	s.removeComponent(cid, eid)
}

func (s *Storage) removeComponent(cid Cid, eid Eid) {
	prev := s.columns[cid].clear(eid)
	if prev == nil {
		return
	}
	s.generation++

	if s.tracing(2) {
		s.log.Debug("removing component",
			zap.Uint32("cid", uint32(cid)),
			zap.String("type", s.registry.Name(cid)),
			zap.Uint32("eid", uint32(eid)))
	}
	release(prev)
}

// GetComponent returns the cid component of eid, or nil. Out-of-range input
// returns nil unless the storage runs in trust mode.
func (s *Storage) GetComponent(cid Cid, eid Eid) Component {
	if s.cfg.TrustMode {
		return s.columns[cid].get(eid)
	}
	if s.entities == nil || !s.entities.inRange(eid) || int(cid) >= len(s.columns) {
		return nil
	}
	return s.columns[cid].get(eid)
}

// HasComponent reports whether eid holds a cid component.
func (s *Storage) HasComponent(cid Cid, eid Eid) bool {
	if s.entities == nil || !s.entities.inRange(eid) || int(cid) >= len(s.columns) {
		return false
	}
	return s.columns[cid].has(eid)
}

// GetAll returns a copy of the identifiers holding cid, in attach order. The
// copy may be iterated while entities are created, modified, or destroyed.
func (s *Storage) GetAll(cid Cid) []Eid {
	if int(cid) >= len(s.columns) {
		return nil
	}
	return s.columns[cid].snapshot()
}

// Iter yields the identifiers holding cid without copying. Any change to the
// cid index while iterating stops the iteration and raises ErrIndexModified;
// use GetAll or Commands when the loop body mutates the storage.
func (s *Storage) Iter(cid Cid) iter.Seq[Eid] {
	return func(yield func(Eid) bool) {
		if int(cid) >= len(s.columns) {
			return
		}
		col := s.columns[cid]
		version := col.version
		for i := 0; i < len(col.eids); i++ {
			eid := col.eids[i]
			if eid == InvalidEid {
				continue
			}
			if !yield(eid) {
				return
			}
			if col.version != version {
				s.assert(eris.Wrapf(ErrIndexModified, "iterate cid %d (%s)", cid, s.registry.Name(cid)))
				return
			}
		}
	}
}

// CountOf returns the number of entities holding cid.
func (s *Storage) CountOf(cid Cid) int {
	if int(cid) >= len(s.columns) {
		return 0
	}
	return s.columns[cid].len()
}

// Components yields every component attached to eid, by ascending Cid.
func (s *Storage) Components(eid Eid) iter.Seq2[Cid, Component] {
	return func(yield func(Cid, Component) bool) {
		if !s.Exists(eid) {
			return
		}
		for cid, col := range s.columns {
			c := col.get(eid)
			if c == nil {
				continue
			}
			if !yield(Cid(cid), c) {
				return
			}
		}
	}
}

// LogAll writes the number of entities per component type at info level.
func (s *Storage) LogAll() {
	for cid, col := range s.columns {
		s.log.Info("component index",
			zap.Uint32("cid", uint32(cid)),
			zap.String("type", s.registry.Name(Cid(cid))),
			zap.Int("entities", col.len()))
	}
}

func (s *Storage) checkTarget(op string, cid Cid, eid Eid) bool {
	if !s.Exists(eid) {
		s.assert(eris.Wrapf(ErrInvalidEntity, "%s: cid %d eid %d", op, cid, eid))
		return false
	}
	if int(cid) >= len(s.columns) {
		s.assert(eris.Wrapf(ErrInvalidComponentType, "%s: cid %d eid %d", op, cid, eid))
		return false
	}
	return true
}

// Generation returns a counter that advances whenever an entity is created or
// destroyed, or a component is attached to or detached from an entity. Caches
// keyed on it are invalidated by any membership change.
func (s *Storage) Generation() uint64 {
	return s.generation
}

func (s *Storage) tracing(level int) bool {
	return s.cfg.Verbosity >= level
}

func release(c Component) {
	if r, ok := c.(Releaser); ok {
		r.Release()
	}
}
