package ecs

import "iter"

// Query iterates the entities holding component T over a snapshot of the
// component index, so the loop body may create, modify, and destroy entities.
// The Scheduler refreshes every Query field of a system before running it;
// standalone queries call Execute before each pass.
type Query[T any] struct {
	storage    *Storage
	snapshot   []Eid
	cacheValid bool
}

// NewQuery creates a Query over storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	return &Query[T]{
		storage: storage,
	}
}

// Init binds or rebinds the Query to a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.storage = storage
	q.snapshot = q.snapshot[:0]
	q.cacheValid = false
}

// Execute snapshots the identifiers currently holding T.
func (q *Query[T]) Execute() {
	q.snapshot = q.snapshot[:0]
	if q.storage != nil {
		if cid, ok := CidOf[T](q.storage.registry); ok && int(cid) < len(q.storage.columns) {
			q.snapshot = q.storage.columns[cid].appendTo(q.snapshot)
		}
	}
	q.cacheValid = true
}

// Len returns the size of the current snapshot.
func (q *Query[T]) Len() int {
	q.ensureSnapshot()
	return len(q.snapshot)
}

// Iter yields each snapshotted entity with its T component. Entities that lost
// the component, or were destroyed, after the snapshot are skipped.
func (q *Query[T]) Iter() iter.Seq2[Eid, *T] {
	q.ensureSnapshot()

	return func(yield func(Eid, *T) bool) {
		for _, eid := range q.snapshot {
			c, ok := Get[T](q.storage, eid)
			if !ok {
				continue
			}
			if !yield(eid, c) {
				return
			}
		}
	}
}

// Values yields the T components of the snapshot.
func (q *Query[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, c := range q.Iter() {
			if !yield(c) {
				return
			}
		}
	}
}

func (q *Query[T]) ensureSnapshot() {
	if !q.cacheValid {
		q.Execute()
	}
}
