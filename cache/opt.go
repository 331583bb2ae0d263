package cache

import (
	"github.com/rocksdb/blockcachesim/internal/pqtable"
	"github.com/rocksdb/blockcachesim/trace"
)

// OPTCache is the Belady/OPT oracle (§4.4): it requires NextAccessSeqNo
// to have been populated on every record by the Simulator's two-pass
// preprocessing, and always evicts the entry farthest from its next
// use (or never-reused, which sorts as farthest of all).
type OPTCache struct {
	*base
	entries map[string]*CacheEntry
	pq      *pqtable.Table[int64]
}

// NewOPTCache constructs an empty OPTCache of the given byte capacity.
func NewOPTCache(cacheSize int64) *OPTCache {
	c := &OPTCache{
		entries: make(map[string]*CacheEntry),
	}
	// Farthest-future-first eviction: the entry with the largest next
	// access sequence number should pop first, so Less reports "a should
	// pop before b" as a > b.
	c.pq = pqtable.New[int64](func(a, b int64) bool { return a > b })
	c.base = newBase("opt", cacheSize, false, nil, c)
	return c
}

func (c *OPTCache) lookup(rec *trace.Record, key string, _ uint64) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	e.NumHits++
	e.LastAccessTimeUs = rec.AccessTimeUs
	c.pq.Upsert(key, rec.NextAccessSeqNo, e.ValueSize)
	return true
}

func (c *OPTCache) evict(_ *trace.Record, _ string, _ uint64, valueSize int64) {
	for c.usedSize+valueSize > c.cacheSize {
		victim := c.pq.Pop()
		if victim == nil {
			return
		}
		delete(c.entries, victim.Key)
		c.usedSize -= victim.Size
		if c.metrics != nil {
			c.metrics.Evict(EvictCapacity)
		}
	}
}

func (c *OPTCache) entryCount() int { return len(c.entries) }

func (c *OPTCache) shouldAdmit(*trace.Record, string, uint64, int64) bool { return true }

func (c *OPTCache) insert(rec *trace.Record, key string, _ uint64, valueSize int64) {
	c.entries[key] = &CacheEntry{
		ValueSize:        valueSize,
		CFID:             rec.CFID,
		Level:            rec.Level,
		BlockType:        rec.BlockType,
		LastAccessTimeUs: rec.AccessTimeUs,
		InsertionTimeUs:  rec.AccessTimeUs,
	}
	c.pq.Upsert(key, rec.NextAccessSeqNo, valueSize)
}
