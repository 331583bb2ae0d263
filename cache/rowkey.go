package cache

import (
	"strconv"

	"github.com/rocksdb/blockcachesim/internal/recencydeque"
)

// rowKeyCap bounds the get_id -> rowKeyState map at a large but finite
// size. The original never evicts get_id entries, so over a long trace
// this map grows without bound; this is the Open Question resolution
// from §9, evicting the least-recently-touched get_id once the cap is
// exceeded.
const rowKeyCap = 1_000_000

// rowKeyState is the per-get_id bookkeeping §4.5's row path maintains:
// whether this logical row lookup has already resolved to a hit, and
// which key_ids have been seen (and whether each was admitted to the
// row-key namespace).
type rowKeyState struct {
	hit      bool
	seenKeys map[uint64]bool
}

// rowKeyTable is the bounded row-key coalescing table, LRU-by-get_id.
type rowKeyTable struct {
	capacity int
	states   map[uint64]*rowKeyState
	recency  *recencydeque.Deque
}

func newRowKeyTable(capacity int) *rowKeyTable {
	return &rowKeyTable{
		capacity: capacity,
		states:   make(map[uint64]*rowKeyState),
		recency:  recencydeque.New(),
	}
}

// getOrCreate returns the state for getID, creating it (and evicting the
// oldest entry if at capacity) on first reference.
func (t *rowKeyTable) getOrCreate(getID uint64) *rowKeyState {
	key := strconv.FormatUint(getID, 10)
	if st, ok := t.states[getID]; ok {
		t.recency.PushFront(key)
		return st
	}
	if len(t.states) >= t.capacity {
		if oldest, ok := t.recency.PopBack(); ok {
			if id, err := strconv.ParseUint(oldest, 10, 64); err == nil {
				delete(t.states, id)
			}
		}
	}
	st := &rowKeyState{seenKeys: make(map[uint64]bool)}
	t.states[getID] = st
	t.recency.PushFront(key)
	return st
}
