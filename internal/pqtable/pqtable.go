// Package pqtable implements a hash-indexed priority queue with lazy
// deletion, the structure the OPT and GreedyDual-Size replacement
// policies use to find their eviction victim in O(log n).
//
// container/heap has no decrease-key primitive, so updating an existing
// key's priority tombstones its old heap node and pushes a fresh one
// (mirroring GabrielNunesIT-go-libs/cache's index-tracking heap.Interface,
// adapted here to the tombstone-on-update scheme the original Python
// PQTable uses instead of heap.Fix/heap.Remove).
package pqtable

import "container/heap"

// Entry is a priority-queue entry (PQEntry in the spec). Priority orders
// entries; Size is the logical weight used by callers tracking used_size;
// removed marks a tombstoned node, one superseded by a later Upsert.
type Entry[P any] struct {
	Key      string
	Priority P
	Size     int64
	removed  bool
	index    int // heap.Interface bookkeeping
}

// Less reports whether a should be popped before b.
type Less[P any] func(a, b P) bool

// Table is a PriorityTable, ordered so Pop always returns the live entry
// that sorts first under less. Construct with a Less that makes the
// desired victim "smallest": OPT wants the maximum next-access sequence
// number evicted, so its Less is `a > b`; GDS wants the minimum priority
// evicted, so its Less is `a < b`. The zero value is not usable; use New.
type Table[P any] struct {
	h     innerHeap[P]
	table map[string]*Entry[P]
}

// New constructs an empty table ordered by less.
func New[P any](less Less[P]) *Table[P] {
	return &Table[P]{table: make(map[string]*Entry[P]), h: innerHeap[P]{less: less}}
}

// Len reports the number of live (non-tombstoned) entries.
func (t *Table[P]) Len() int { return len(t.table) }

// Contains reports whether key has a live entry.
func (t *Table[P]) Contains(key string) bool {
	_, ok := t.table[key]
	return ok
}

// Get returns the live entry for key, if any.
func (t *Table[P]) Get(key string) (*Entry[P], bool) {
	e, ok := t.table[key]
	return e, ok
}

// Upsert adds a new key or replaces an existing key's priority. If key was
// already present, its old node is tombstoned and the previous entry is
// returned (the caller can inspect its prior Size/Priority); otherwise
// returns nil.
func (t *Table[P]) Upsert(key string, priority P, size int64) *Entry[P] {
	old, existed := t.table[key]
	if existed {
		old.removed = true
	}
	e := &Entry[P]{Key: key, Priority: priority, Size: size}
	t.table[key] = e
	heap.Push(&t.h, e)
	if existed {
		return old
	}
	return nil
}

// Pop repeatedly discards tombstoned heap nodes until a live entry
// surfaces, removes it from the table, and returns it. Returns nil iff
// the table is empty.
func (t *Table[P]) Pop() *Entry[P] {
	for t.h.Len() > 0 {
		e := heap.Pop(&t.h).(*Entry[P])
		if e.removed {
			continue
		}
		delete(t.table, e.Key)
		return e
	}
	return nil
}

// Peek returns the current victim without removing it, or nil if empty.
func (t *Table[P]) Peek() *Entry[P] {
	for t.h.Len() > 0 {
		e := t.h.items[0]
		if !e.removed {
			return e
		}
		heap.Pop(&t.h)
	}
	return nil
}

// innerHeap implements heap.Interface over *Entry[P], ordered by the
// table's Less.
type innerHeap[P any] struct {
	items []*Entry[P]
	less  Less[P]
}

func (h innerHeap[P]) Len() int            { return len(h.items) }
func (h innerHeap[P]) Less(i, j int) bool  { return h.less(h.items[i].Priority, h.items[j].Priority) }
func (h innerHeap[P]) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.items[i].index = i
	h.items[j].index = j
}
func (h *innerHeap[P]) Push(x any) {
	e := x.(*Entry[P])
	e.index = len(h.items)
	h.items = append(h.items, e)
}
func (h *innerHeap[P]) Pop() any {
	old := h.items
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.items = old[:n-1]
	return e
}
