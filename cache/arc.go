package cache

import (
	"math"

	"github.com/rocksdb/blockcachesim/internal/recencydeque"
	"github.com/rocksdb/blockcachesim/trace"
)

// ARCCache is Megiddo-Modha's Adaptive Replacement Cache, adapted for
// variable block sizes (§4.4): a synthetic block capacity c =
// cache_size/16KiB stands in for "number of elements", and eviction
// demotes from both T1 and T2 until there's room rather than assuming
// unit-size entries.
type ARCCache struct {
	*base
	entries map[string]*CacheEntry
	t1, b1  *recencydeque.Deque
	t2, b2  *recencydeque.Deque
	c       float64
	p       float64
}

// NewARCCache constructs an empty ARCCache of the given byte capacity.
func NewARCCache(cacheSize int64) *ARCCache {
	c := &ARCCache{
		entries: make(map[string]*CacheEntry),
		t1:      recencydeque.New(),
		b1:      recencydeque.New(),
		t2:      recencydeque.New(),
		b2:      recencydeque.New(),
		c:       float64(cacheSize) / (16 * 1024),
	}
	c.base = newBase("arc", cacheSize, false, nil, c)
	return c
}

// C reports the synthetic block capacity (test/inspection hook).
func (c *ARCCache) C() float64 { return c.c }

// P reports the current T1 target size (test/inspection hook).
func (c *ARCCache) P() float64 { return c.p }

func (c *ARCCache) lookup(rec *trace.Record, key string, _ uint64) bool {
	if c.t1.Contains(key) {
		c.t1.Remove(key)
		c.t2.PushFront(key)
		return true
	}
	if c.t2.Contains(key) {
		c.t2.Remove(key)
		c.t2.PushFront(key)
		return true
	}
	_ = rec
	return false
}

func (c *ARCCache) evict(_ *trace.Record, key string, _ uint64, valueSize int64) {
	if c.b1.Contains(key) {
		ratio := float64(c.b2.Len()) / float64(c.b1.Len())
		if ratio < 1 {
			ratio = 1
		}
		c.p = math.Min(c.c, c.p+ratio)
		c.replace(key, valueSize)
		c.b1.Remove(key)
		c.t2.PushFront(key)
		return
	}
	if c.b2.Contains(key) {
		ratio := float64(c.b1.Len()) / float64(c.b2.Len())
		if ratio < 1 {
			ratio = 1
		}
		c.p = math.Max(0, c.p-ratio)
		c.replace(key, valueSize)
		c.b2.Remove(key)
		c.t2.PushFront(key)
		return
	}

	c.replace(key, valueSize)
	for float64(c.t1.Len()+c.b1.Len()) >= c.c && c.b1.Len() > 0 {
		if _, ok := c.b1.PopBack(); !ok {
			break
		}
	}
	total := c.t1.Len() + c.b1.Len() + c.t2.Len() + c.b2.Len()
	for float64(total) >= 2*c.c && c.b2.Len() > 0 {
		if _, ok := c.b2.PopBack(); !ok {
			break
		}
		total--
	}
	c.t1.PushFront(key)
}

// replace demotes entries from T1/T2 to their ghost lists until there is
// room for valueSize more bytes (§4.4).
func (c *ARCCache) replace(key string, valueSize int64) {
	for c.usedSize+valueSize > c.cacheSize {
		var old string
		var ok bool
		switch {
		case c.t1.Len() > 0 && (c.b2.Contains(key) || float64(c.t1.Len()) > c.p):
			old, ok = c.t1.PopBack()
			if ok {
				c.b1.PushFront(old)
			}
		case c.t2.Len() > 0:
			old, ok = c.t2.PopBack()
			if ok {
				c.b2.PushFront(old)
			}
		default:
			old, ok = c.t1.PopBack()
			if ok {
				c.b1.PushFront(old)
			}
		}
		if !ok {
			return
		}
		e, present := c.entries[old]
		if !present {
			continue
		}
		c.usedSize -= e.ValueSize
		delete(c.entries, old)
		if c.metrics != nil {
			c.metrics.Evict(EvictCapacity)
		}
	}
}

func (c *ARCCache) entryCount() int { return len(c.entries) }

func (c *ARCCache) shouldAdmit(*trace.Record, string, uint64, int64) bool { return true }

func (c *ARCCache) insert(rec *trace.Record, key string, _ uint64, valueSize int64) {
	c.entries[key] = &CacheEntry{
		ValueSize:        valueSize,
		CFID:             rec.CFID,
		Level:            rec.Level,
		BlockType:        rec.BlockType,
		LastAccessTimeUs: rec.AccessTimeUs,
		InsertionTimeUs:  rec.AccessTimeUs,
	}
}
