package ecs

import "iter"

// Eid identifies an entity. Valid identifiers are drawn from [1, Capacity()).
type Eid uint32

// InvalidEid is the reserved "no entity" identifier returned when Create fails.
const InvalidEid Eid = 0

// entitySpace is the liveness table for every identifier below the capacity ceiling.
// Index 0 is never marked live.
type entitySpace struct {
	live  []bool
	count int

	// lowest is a lower bound on the smallest free identifier.
	lowest int
}

func newEntitySpace(capacity int) *entitySpace {
	return &entitySpace{
		live:   make([]bool, capacity),
		lowest: 1,
	}
}

// inRange reports whether eid addresses a slot of the table, live or not.
func (es *entitySpace) inRange(eid Eid) bool {
	return eid != InvalidEid && int(eid) < len(es.live)
}

func (es *entitySpace) exists(eid Eid) bool {
	return es.inRange(eid) && es.live[eid]
}

// claim marks the lowest unused identifier as live.
// It returns InvalidEid when every slot below the ceiling is taken.
func (es *entitySpace) claim() Eid {
	for i := es.lowest; i < len(es.live); i++ {
		if !es.live[i] {
			es.live[i] = true
			es.count++
			es.lowest = i + 1
			return Eid(i)
		}
	}
	es.lowest = len(es.live)
	return InvalidEid
}

// reset marks every identifier free.
func (es *entitySpace) reset() {
	clear(es.live)
	es.count = 0
	es.lowest = 1
}

func (es *entitySpace) release(eid Eid) {
	if !es.exists(eid) {
		return
	}
	es.live[eid] = false
	es.count--
	es.lowest = min(es.lowest, int(eid))
}

// all yields live identifiers in ascending order. Releasing the identifier
// currently being visited is allowed.
func (es *entitySpace) all() iter.Seq[Eid] {
	return func(yield func(Eid) bool) {
		for i := 1; i < len(es.live); i++ {
			if es.live[i] && !yield(Eid(i)) {
				return
			}
		}
	}
}
