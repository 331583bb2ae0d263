// Package cache implements the replacement-policy engines: the
// classical caches (LRU, OPT, ARC, GreedyDual-Size) and the
// sample-based ML meta-caches (ThompsonSampling, LinUCB) that choose
// among sub-policies per eviction. All of them share the access/evict/
// should-admit/insert protocol and row-key coalescing implemented here
// in base, and expose themselves uniformly through the Cache interface
// (§9 "Cache as polymorphic entity").
package cache

import (
	"github.com/rocksdb/blockcachesim/stats"
	"github.com/rocksdb/blockcachesim/trace"
)

// EvictReason distinguishes why an entry left the cache, for Metrics.
// The simulator has no TTL concept, so every eviction is driven by
// either a direct capacity shortfall or a sub-policy's chosen victim.
type EvictReason int

const (
	EvictCapacity EvictReason = iota
	EvictPolicy
)

// Metrics is the optional observability hook a Cache reports through; a
// nil Metrics is always a valid no-op (every call site checks for nil).
type Metrics interface {
	Hit()
	Miss()
	Evict(EvictReason)
	Size(entries int, cost int64)
}

// Cache is the capability set every concrete replacement policy
// implements. The driver holds this interface rather than switching on
// a concrete type per cache_type (§9).
type Cache interface {
	// Access drives one trace record through the shared lookup/evict/
	// should-admit/insert protocol, updating stats as a side effect.
	Access(rec *trace.Record)

	CacheName() string
	UsedSize() int64
	CacheSize() int64

	MissRatioStats() *stats.MissRatioStats
	HourlyMissRatioStats() *stats.MissRatioStats
	PolicyStats() *stats.PolicyStats
	HourlyPolicyStats() *stats.PolicyStats
}

// hooks is the per-policy behavior base dispatches through: base owns
// the access/row-coalescing protocol shared by every cache, hooks owns
// the replacement-policy-specific lookup/evict/insert/admission
// decision. This plays the role the teacher's policy.Hooks/ShardPolicy
// split plays for its shard's intrusive list.
type hooks interface {
	lookup(rec *trace.Record, key string, hash uint64) bool
	evict(rec *trace.Record, key string, hash uint64, valueSize int64)
	shouldAdmit(rec *trace.Record, key string, hash uint64, valueSize int64) bool
	insert(rec *trace.Record, key string, hash uint64, valueSize int64)
	entryCount() int
}

// base implements the access/row-key-coalescing protocol shared by every
// concrete Cache (§4.5) and the stats accounting performed on every
// access (§4.9). Concrete caches embed *base and supply hooks.
type base struct {
	name      string
	cacheSize int64
	usedSize  int64
	hks       hooks
	metrics   Metrics

	minuteMiss   *stats.MissRatioStats
	hourMiss     *stats.MissRatioStats
	minutePolicy *stats.PolicyStats
	hourPolicy   *stats.PolicyStats

	rowKeyEnabled bool
	rowKey        *rowKeyTable
}

// newBase constructs the shared plumbing. policyNames is the set of
// sub-policy names this cache's PolicyStats tracks; pass nil for
// classical caches that never select among sub-policies.
func newBase(name string, cacheSize int64, enableRowKey bool, policyNames []string, hks hooks) *base {
	b := &base{
		name:          name,
		cacheSize:     cacheSize,
		hks:           hks,
		minuteMiss:    stats.NewMissRatioStats(stats.SecondsInMinute),
		hourMiss:      stats.NewMissRatioStats(stats.SecondsInHour),
		minutePolicy:  stats.NewPolicyStats(stats.SecondsInMinute, policyNames),
		hourPolicy:    stats.NewPolicyStats(stats.SecondsInHour, policyNames),
		rowKeyEnabled: enableRowKey,
	}
	if enableRowKey {
		b.rowKey = newRowKeyTable(rowKeyCap)
	}
	return b
}

// SetMetrics attaches an optional observability hook (§4.10, the
// metrics/prom adapter in practice). Concrete caches promote this
// method from *base, so cmd/blockcachesim can attach it via a
// `interface{ SetMetrics(Metrics) }` assertion without it appearing on
// the narrower Cache interface every caller sees.
func (b *base) SetMetrics(m Metrics) { b.metrics = m }

func (b *base) CacheName() string                          { return b.name }
func (b *base) UsedSize() int64                             { return b.usedSize }
func (b *base) CacheSize() int64                            { return b.cacheSize }
func (b *base) MissRatioStats() *stats.MissRatioStats       { return b.minuteMiss }
func (b *base) HourlyMissRatioStats() *stats.MissRatioStats { return b.hourMiss }
func (b *base) PolicyStats() *stats.PolicyStats             { return b.minutePolicy }
func (b *base) HourlyPolicyStats() *stats.PolicyStats       { return b.hourPolicy }

func (b *base) updateStats(accessTimeUs int64, isHit bool) {
	b.minuteMiss.Update(accessTimeUs, isHit)
	b.hourMiss.Update(accessTimeUs, isHit)
	if b.metrics == nil {
		return
	}
	if isHit {
		b.metrics.Hit()
	} else {
		b.metrics.Miss()
	}
	b.metrics.Size(b.hks.entryCount(), b.usedSize)
}

// recordPolicySelection records which sub-policy an ML cache chose for
// the eviction driven by the access at accessTimeUs (§4.9).
func (b *base) recordPolicySelection(accessTimeUs int64, policyName string) {
	b.minutePolicy.Update(accessTimeUs, policyName)
	b.hourPolicy.Update(accessTimeUs, policyName)
}

// Access implements Cache.Access: row-key coalescing first, if enabled
// and the record is a point-get, else the plain block-key path.
func (b *base) Access(rec *trace.Record) {
	if b.usedSize > b.cacheSize {
		panic("cache: used_size exceeds cache_size")
	}
	if b.rowKeyEnabled && rec.IsRowGet() {
		b.accessRow(rec)
		return
	}
	isHit := b.accessKV(rec, rec.BlockKey(), rec.BlockID, rec.BlockSize, rec.NoInsert)
	b.updateStats(rec.AccessTimeUs, isHit)
}

// accessRow implements the row-key coalescing protocol (§4.5): the
// first sighting of each (get_id, key_id) probes the row namespace,
// then — if still unresolved — the block namespace, and treats every
// subsequent record sharing get_id as a hit once a row-namespace probe
// has hit. A block-namespace hit counts for its own record only and does
// not resolve the get_id.
func (b *base) accessRow(rec *trace.Record) {
	st := b.rowKey.getOrCreate(rec.GetID)
	if st.hit {
		b.updateStats(rec.AccessTimeUs, true)
		return
	}
	if _, seen := st.seenKeys[rec.KeyID]; !seen {
		isHit := b.accessKV(rec, rec.RowKey(), rec.KeyID, rec.KVSize, false)
		st.seenKeys[rec.KeyID] = rec.KVSize > 0
		st.hit = isHit
	}
	if st.hit {
		b.updateStats(rec.AccessTimeUs, true)
		return
	}
	isHit := b.accessKV(rec, rec.BlockKey(), rec.BlockID, rec.BlockSize, rec.NoInsert)
	b.updateStats(rec.AccessTimeUs, isHit)
	if rec.KVSize > 0 && !st.seenKeys[rec.KeyID] {
		b.accessKV(rec, rec.RowKey(), rec.KeyID, rec.KVSize, false)
		st.seenKeys[rec.KeyID] = true
	}
}

// accessKV implements the shared lookup/evict/should-admit/insert body
// (§4.5 point 3). It returns whether the access was a hit.
func (b *base) accessKV(rec *trace.Record, key string, hash uint64, valueSize int64, noInsert bool) bool {
	if b.usedSize > b.cacheSize {
		panic("cache: used_size exceeds cache_size")
	}
	if b.hks.lookup(rec, key, hash) {
		return true
	}
	if noInsert || valueSize <= 0 {
		return false
	}
	if valueSize > b.cacheSize {
		return false
	}
	b.hks.evict(rec, key, hash, valueSize)
	if b.hks.shouldAdmit(rec, key, hash, valueSize) {
		b.hks.insert(rec, key, hash, valueSize)
		b.usedSize += valueSize
	}
	return false
}
