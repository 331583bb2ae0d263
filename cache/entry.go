package cache

// CacheEntry is the metadata kept about one resident cache value (§3).
// It is created on insert; InsertionTimeUs is immutable for the entry's
// lifetime. The sample-based caches update LastAccessSequence and NumHits
// on every hit; OPT and GreedyDual-Size update only NumHits and
// LastAccessTimeUs, and LRU and ARC leave the entry unchanged on a hit.
type CacheEntry struct {
	ValueSize          int64
	LastAccessSequence int64
	NumHits            int64
	CFID               int64
	Level              int64
	BlockType          int64
	LastAccessTimeUs   int64
	InsertionTimeUs    int64
}
