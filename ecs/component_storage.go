package ecs

import (
	"github.com/kamstrup/intmap"
)

// compactMinDead is the number of tombstones a column tolerates before it
// considers compacting its index.
const compactMinDead = 32

// componentColumn is the dense table for one component type: one slot per
// identifier plus the ordered list of identifiers whose slot is occupied.
type componentColumn struct {
	slots []Component

	// eids is the secondary index in insertion order. Removed members leave an
	// InvalidEid tombstone until the next compaction; positions maps each live
	// member to its offset in eids.
	eids      []Eid
	positions *intmap.Map[Eid, int]
	dead      int

	// version increments on every change to eids, so live iterators can
	// detect invalidation.
	version uint64
}

func newComponentColumn(capacity int) *componentColumn {
	return &componentColumn{
		slots:     make([]Component, capacity),
		eids:      make([]Eid, 0, min(capacity, 256)),
		positions: intmap.New[Eid, int](min(capacity, 256)),
	}
}

// get returns the occupant of eid's slot. The caller range-checks eid.
func (c *componentColumn) get(eid Eid) Component {
	return c.slots[eid]
}

// set stores comp in eid's slot and returns the previous occupant, if any.
func (c *componentColumn) set(eid Eid, comp Component) Component {
	prev := c.slots[eid]
	c.slots[eid] = comp
	if prev == nil {
		c.positions.Put(eid, len(c.eids))
		c.eids = append(c.eids, eid)
		c.version++
	}
	return prev
}

// clear empties eid's slot and returns the removed occupant, if any.
func (c *componentColumn) clear(eid Eid) Component {
	prev := c.slots[eid]
	if prev == nil {
		return nil
	}
	c.slots[eid] = nil

	if pos, ok := c.positions.Get(eid); ok {
		c.eids[pos] = InvalidEid
		c.positions.Del(eid)
		c.dead++
		if c.dead >= compactMinDead && c.dead*2 >= len(c.eids) {
			c.compact()
		}
	}
	c.version++
	return prev
}

// compact drops tombstones from the index, keeping insertion order.
func (c *componentColumn) compact() {
	live := c.eids[:0]
	for _, eid := range c.eids {
		if eid == InvalidEid {
			continue
		}
		c.positions.Put(eid, len(live))
		live = append(live, eid)
	}
	clear(c.eids[len(live):])
	c.eids = live
	c.dead = 0
}

// reset releases every occupant and empties the column.
func (c *componentColumn) reset() {
	for _, eid := range c.eids {
		if eid == InvalidEid {
			continue
		}
		release(c.slots[eid])
		c.slots[eid] = nil
	}
	c.eids = c.eids[:0]
	c.positions.Clear()
	c.dead = 0
	c.version++
}

func (c *componentColumn) has(eid Eid) bool {
	return c.positions.Has(eid)
}

func (c *componentColumn) len() int {
	return len(c.eids) - c.dead
}

// appendTo appends the live members of the index to dst.
func (c *componentColumn) appendTo(dst []Eid) []Eid {
	for _, eid := range c.eids {
		if eid != InvalidEid {
			dst = append(dst, eid)
		}
	}
	return dst
}

// snapshot copies the secondary index.
func (c *componentColumn) snapshot() []Eid {
	return c.appendTo(make([]Eid, 0, c.len()))
}
