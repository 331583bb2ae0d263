package cache

import (
	"github.com/rocksdb/blockcachesim/internal/pqtable"
	"github.com/rocksdb/blockcachesim/trace"
)

// GDSizeCache is GreedyDual-Size (§4.4): priority on insert/hit is a
// scalar inflation L plus the entry's size, so large items age faster;
// eviction always pops the minimum-priority entry and raises L to its
// priority, a size-sensitive generalization of LRU aging.
type GDSizeCache struct {
	*base
	entries   map[string]*CacheEntry
	pq        *pqtable.Table[float64]
	inflation float64
}

// NewGDSizeCache constructs an empty GDSizeCache of the given byte
// capacity.
func NewGDSizeCache(cacheSize int64) *GDSizeCache {
	c := &GDSizeCache{
		entries: make(map[string]*CacheEntry),
	}
	c.pq = pqtable.New[float64](func(a, b float64) bool { return a < b })
	c.base = newBase("gdsize", cacheSize, false, nil, c)
	return c
}

func (c *GDSizeCache) priority(valueSize int64) float64 {
	return c.inflation + float64(valueSize)
}

func (c *GDSizeCache) lookup(rec *trace.Record, key string, _ uint64) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	e.NumHits++
	e.LastAccessTimeUs = rec.AccessTimeUs
	c.pq.Upsert(key, c.priority(e.ValueSize), e.ValueSize)
	return true
}

func (c *GDSizeCache) evict(_ *trace.Record, _ string, _ uint64, valueSize int64) {
	for c.usedSize+valueSize > c.cacheSize {
		victim := c.pq.Pop()
		if victim == nil {
			return
		}
		c.inflation = victim.Priority
		delete(c.entries, victim.Key)
		c.usedSize -= victim.Size
		if c.metrics != nil {
			c.metrics.Evict(EvictCapacity)
		}
	}
}

func (c *GDSizeCache) entryCount() int { return len(c.entries) }

func (c *GDSizeCache) shouldAdmit(*trace.Record, string, uint64, int64) bool { return true }

func (c *GDSizeCache) insert(rec *trace.Record, key string, _ uint64, valueSize int64) {
	c.entries[key] = &CacheEntry{
		ValueSize:        valueSize,
		CFID:             rec.CFID,
		Level:            rec.Level,
		BlockType:        rec.BlockType,
		LastAccessTimeUs: rec.AccessTimeUs,
		InsertionTimeUs:  rec.AccessTimeUs,
	}
	c.pq.Upsert(key, c.priority(valueSize), valueSize)
}
