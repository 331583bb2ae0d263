package cache

import (
	"github.com/rocksdb/blockcachesim/internal/recencydeque"
	"github.com/rocksdb/blockcachesim/trace"
)

// LRUCache is a strict move-to-front LRU queue (§4.4).
type LRUCache struct {
	*base
	entries map[string]*CacheEntry
	order   *recencydeque.Deque
}

// NewLRUCache constructs an empty LRUCache of the given byte capacity.
func NewLRUCache(cacheSize int64) *LRUCache {
	c := &LRUCache{
		entries: make(map[string]*CacheEntry),
		order:   recencydeque.New(),
	}
	c.base = newBase("lru", cacheSize, false, nil, c)
	return c
}

func (c *LRUCache) lookup(_ *trace.Record, key string, _ uint64) bool {
	if _, ok := c.entries[key]; !ok {
		return false
	}
	c.order.PushFront(key)
	return true
}

func (c *LRUCache) evict(_ *trace.Record, _ string, _ uint64, valueSize int64) {
	for c.usedSize+valueSize > c.cacheSize {
		victim, ok := c.order.PopBack()
		if !ok {
			return
		}
		c.usedSize -= c.entries[victim].ValueSize
		delete(c.entries, victim)
		if c.metrics != nil {
			c.metrics.Evict(EvictCapacity)
		}
	}
}

func (c *LRUCache) entryCount() int { return len(c.entries) }

func (c *LRUCache) shouldAdmit(*trace.Record, string, uint64, int64) bool { return true }

func (c *LRUCache) insert(rec *trace.Record, key string, _ uint64, valueSize int64) {
	c.entries[key] = &CacheEntry{
		ValueSize:        valueSize,
		CFID:             rec.CFID,
		Level:            rec.Level,
		BlockType:        rec.BlockType,
		LastAccessTimeUs: rec.AccessTimeUs,
		InsertionTimeUs:  rec.AccessTimeUs,
	}
	c.order.PushFront(key)
}
